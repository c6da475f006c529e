package queries

import (
	"context"
	"errors"

	"backoffice/internal/pkg/guard"
)

var ErrGetStatisticsQueryIsNotConstructed = errors.New(
	"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
)

// GetStatisticsQuery asks for the dashboard snapshot.
type GetStatisticsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatisticsQuery() GetStatisticsQuery {
	return GetStatisticsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

// GetStatisticsQueryHandler recomputes the snapshot on every call; nothing is cached.
type GetStatisticsQueryHandler struct {
	reader StatisticsReader
}

func NewGetStatisticsQueryHandler(reader StatisticsReader) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{reader: reader}
}

func (h GetStatisticsQueryHandler) Handle(ctx context.Context, query GetStatisticsQuery) (StatisticsView, error) {
	if err := query.Validate(); err != nil {
		return StatisticsView{}, err
	}
	return h.reader.Statistics(ctx)
}
