// Package http is the echo adapter of the back-office API. Server implements
// servers.ServerInterface by turning requests into commands and queries.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/agent"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/pricing"
	"backoffice/internal/generated/servers"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Handlers groups the use cases the HTTP API dispatches to.
type Handlers struct {
	AdjustBalance    commands.AdjustBalanceCommandHandler
	ChangeStatus     commands.ChangeAgentStatusCommandHandler
	DeleteAgent      commands.DeleteAgentCommandHandler
	DeleteOrder      commands.DeleteOrderCommandHandler
	UpdateParameters commands.UpdateParametersCommandHandler

	GetAllAgents  queries.GetAllAgentsQueryHandler
	GetAllOrders  queries.GetAllOrdersQueryHandler
	GetParameters queries.GetParametersQueryHandler
	QuoteFare     queries.QuoteFareQueryHandler
	GetStatistics queries.GetStatisticsQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

var _ servers.ServerInterface = (*Server)(nil)

// ListAgents handles GET /api/v1/agents.
func (s *Server) ListAgents(ctx echo.Context, params servers.ListAgentsParams) error {
	includeRejected := params.IncludeRejected != nil && *params.IncludeRejected
	query := queries.NewGetAllAgentsQuery(includeRejected)

	views, err := s.h.GetAllAgents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Agent, len(views))
	for i, v := range views {
		response[i] = servers.Agent{
			Id:      v.ID.Bytes(),
			Name:    v.Name,
			Phone:   v.Phone,
			Vehicle: v.Vehicle,
			Status:  agentStatus(v.Status),
			Balance: v.Balance.Amount(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApproveAgent handles POST /api/v1/agents/{id}/approve.
func (s *Server) ApproveAgent(ctx echo.Context, id openapi_types.UUID) error {
	return s.changeStatus(ctx, id, agent.Approved)
}

// RejectAgent handles POST /api/v1/agents/{id}/reject.
func (s *Server) RejectAgent(ctx echo.Context, id openapi_types.UUID) error {
	return s.changeStatus(ctx, id, agent.Rejected)
}

func (s *Server) changeStatus(ctx echo.Context, id openapi_types.UUID, target agent.Status) error {
	agentID, err := pathID("agent", id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeAgentStatusCommand(agentID, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.ChangeStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, agentResponse(a))
}

// DeleteAgent handles DELETE /api/v1/agents/{id}. Confirmation is enforced by middleware.
func (s *Server) DeleteAgent(ctx echo.Context, id openapi_types.UUID) error {
	agentID, err := pathID("agent", id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteAgentCommand(agentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.DeleteAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Deleted{Deleted: id})
}

// AddDebt handles POST /api/v1/agents/{id}/debt/add.
func (s *Server) AddDebt(ctx echo.Context, id openapi_types.UUID, params servers.AdjustBalanceParams) error {
	return s.adjust(ctx, id, agent.AddDebt, params)
}

// RecordPayment handles POST /api/v1/agents/{id}/debt/pay.
func (s *Server) RecordPayment(ctx echo.Context, id openapi_types.UUID, params servers.AdjustBalanceParams) error {
	return s.adjust(ctx, id, agent.RecordPayment, params)
}

func (s *Server) adjust(
	ctx echo.Context,
	id openapi_types.UUID,
	kind agent.AdjustmentKind,
	params servers.AdjustBalanceParams,
) error {
	agentID, err := pathID("agent", id)
	if err != nil {
		return s.fail(ctx, err)
	}

	amount, err := readAmount(ctx.Request(), params)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdjustBalanceCommand(agentID, kind, amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.AdjustBalance.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, agentResponse(a))
}

// readAmount takes the amount from the JSON body when it carries one and from the amount
// query parameter otherwise.
func readAmount(req *http.Request, params servers.AdjustBalanceParams) (kernel.Money, error) {
	if req.Body != nil && req.ContentLength != 0 {
		var body servers.AdjustmentRequest
		err := json.NewDecoder(req.Body).Decode(&body)
		switch {
		case errors.Is(err, io.EOF):
		case err != nil:
			return kernel.Money{}, errs.NewInvalidAmountErrorWithCause("request body", err)
		case body.Amount != nil:
			return kernel.ParseAmount(body.Amount.String())
		}
	}

	if params.Amount != nil {
		return kernel.ParseAmount(*params.Amount)
	}
	return kernel.Money{}, errs.NewInvalidAmountError("missing")
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	views, err := s.h.GetAllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(views))
	for i, v := range views {
		o := servers.Order{
			Id:                v.ID.Bytes(),
			Origin:            v.Origin,
			Destination:       v.Destination,
			DistanceKm:        json.Number(v.DistanceKm.String()),
			Fare:              v.Fare.Amount(),
			Commission:        v.Commission.Amount(),
			Status:            servers.OrderStatus(strings.ToLower(v.Status.String())),
			CommissionSettled: v.CommissionSettled,
		}
		if v.AgentID != nil {
			agentID := openapi_types.UUID(v.AgentID.Bytes())
			o.AgentId = &agentID
		}
		response[i] = o
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}. Confirmation is enforced by middleware.
func (s *Server) DeleteOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := pathID("order", id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Deleted{Deleted: id})
}

// GetParameters handles GET /api/v1/parameters.
func (s *Server) GetParameters(ctx echo.Context) error {
	params, err := s.h.GetParameters.Handle(ctx.Request().Context(), queries.NewGetParametersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, parametersResponse(params))
}

// UpdateParameters handles PUT /api/v1/parameters. All three fields are required; the stored
// parameters are replaced as a whole or not at all.
func (s *Server) UpdateParameters(ctx echo.Context) error {
	var body servers.UpdateParametersJSONRequestBody
	if err := json.NewDecoder(ctx.Request().Body).Decode(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	if err := errors.Join(
		requireField("baseFare", body.BaseFare),
		requireField("perDistanceFare", body.PerDistanceFare),
		requireField("commissionRate", body.CommissionRate),
	); err != nil {
		return s.fail(ctx, err)
	}

	params, err := pricing.ParseParameters(*body.BaseFare, *body.PerDistanceFare, *body.CommissionRate)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateParametersCommand(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.h.UpdateParameters.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parametersResponse(updated))
}

func requireField(name string, v *decimal.Decimal) error {
	if v == nil {
		return errs.NewInvalidParameterError(name, "missing", 0, nil)
	}
	return nil
}

// QuoteFare handles GET /api/v1/parameters/quote.
func (s *Server) QuoteFare(ctx echo.Context, params servers.QuoteFareParams) error {
	distance, err := kernel.ParseDistance(params.Distance)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewQuoteFareQuery(distance)
	if err != nil {
		return s.fail(ctx, err)
	}

	quote, err := s.h.QuoteFare.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Quote{
		DistanceKm: json.Number(quote.Distance.Km().String()),
		Fare:       quote.Fare.Amount(),
		Commission: quote.Commission.Amount(),
	})
}

// GetStatistics handles GET /api/v1/statistics.
func (s *Server) GetStatistics(ctx echo.Context) error {
	stats, err := s.h.GetStatistics.Handle(ctx.Request().Context(), queries.NewGetStatisticsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Statistics{
		TotalAgents:     stats.TotalAgents,
		TotalOrders:     stats.TotalOrders,
		TotalCommission: stats.TotalCommission.Amount(),
		TotalDebt:       stats.TotalDebt.Amount(),
	})
}

func agentStatus(s agent.Status) servers.AgentStatus {
	return servers.AgentStatus(strings.ToLower(s.String()))
}

func agentResponse(a *agent.Agent) servers.Agent {
	return servers.Agent{
		Id:      a.ID().Bytes(),
		Name:    a.Name(),
		Phone:   a.Phone(),
		Vehicle: a.Vehicle(),
		Status:  agentStatus(a.Status()),
		Balance: a.Balance().Amount(),
	}
}

func parametersResponse(p pricing.Parameters) servers.ParametersResponse {
	return servers.ParametersResponse{
		BaseFare:        p.BaseFare().Amount(),
		PerDistanceFare: p.PerDistanceFare().Amount(),
		CommissionRate:  json.Number(p.CommissionRate().String()),
	}
}

// pathID converts an id path parameter. No agent or order ever has the nil UUID, so it is
// reported as not found like any other unknown id.
func pathID(resource string, id openapi_types.UUID) (kernel.UUID, error) {
	if id == uuid.Nil {
		return kernel.UUID{}, errs.NewObjectNotFoundError(resource, id.String())
	}
	return kernel.UUIDFromBytes(id[:])
}
