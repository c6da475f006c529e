package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List agents ordered by name
	// (GET /api/v1/agents)
	ListAgents(ctx echo.Context, params ListAgentsParams) error
	// Delete an agent that no order references
	// (DELETE /api/v1/agents/{id})
	DeleteAgent(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/v1/agents/{id}/approve)
	ApproveAgent(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/v1/agents/{id}/reject)
	RejectAgent(ctx echo.Context, id openapi_types.UUID) error
	// Increase the agent's debt by amount
	// (POST /api/v1/agents/{id}/debt/add)
	AddDebt(ctx echo.Context, id openapi_types.UUID, params AdjustBalanceParams) error
	// Record a payment of amount from the agent
	// (POST /api/v1/agents/{id}/debt/pay)
	RecordPayment(ctx echo.Context, id openapi_types.UUID, params AdjustBalanceParams) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context) error
	// (DELETE /api/v1/orders/{id})
	DeleteOrder(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/v1/parameters)
	GetParameters(ctx echo.Context) error
	// (PUT /api/v1/parameters)
	UpdateParameters(ctx echo.Context) error
	// (GET /api/v1/parameters/quote)
	QuoteFare(ctx echo.Context, params QuoteFareParams) error
	// (GET /api/v1/statistics)
	GetStatistics(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, ctx.Param("id"), &id)
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// ListAgents converts echo context to params.
func (w *ServerInterfaceWrapper) ListAgents(ctx echo.Context) error {
	var params ListAgentsParams

	err := runtime.BindQueryParameter("form", true, false, "include_rejected", ctx.QueryParams(), &params.IncludeRejected)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter include_rejected: %s", err))
	}

	return w.Handler.ListAgents(ctx, params)
}

// DeleteAgent converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteAgent(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteAgent(ctx, id)
}

// ApproveAgent converts echo context to params.
func (w *ServerInterfaceWrapper) ApproveAgent(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ApproveAgent(ctx, id)
}

// RejectAgent converts echo context to params.
func (w *ServerInterfaceWrapper) RejectAgent(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RejectAgent(ctx, id)
}

func bindAdjustBalanceParams(ctx echo.Context) (AdjustBalanceParams, error) {
	var params AdjustBalanceParams

	err := runtime.BindQueryParameter("form", true, false, "amount", ctx.QueryParams(), &params.Amount)
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter amount: %s", err))
	}
	return params, nil
}

// AddDebt converts echo context to params.
func (w *ServerInterfaceWrapper) AddDebt(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	params, err := bindAdjustBalanceParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AddDebt(ctx, id, params)
}

// RecordPayment converts echo context to params.
func (w *ServerInterfaceWrapper) RecordPayment(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	params, err := bindAdjustBalanceParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RecordPayment(ctx, id, params)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	return w.Handler.ListOrders(ctx)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

// GetParameters converts echo context to params.
func (w *ServerInterfaceWrapper) GetParameters(ctx echo.Context) error {
	return w.Handler.GetParameters(ctx)
}

// UpdateParameters converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateParameters(ctx echo.Context) error {
	return w.Handler.UpdateParameters(ctx)
}

// QuoteFare converts echo context to params.
func (w *ServerInterfaceWrapper) QuoteFare(ctx echo.Context) error {
	var params QuoteFareParams

	err := runtime.BindQueryParameter("form", true, true, "distance", ctx.QueryParams(), &params.Distance)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter distance: %s", err))
	}

	return w.Handler.QuoteFare(ctx, params)
}

// GetStatistics converts echo context to params.
func (w *ServerInterfaceWrapper) GetStatistics(ctx echo.Context) error {
	return w.Handler.GetStatistics(ctx)
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers and prepends baseURL to the paths, so that
// the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/agents", wrapper.ListAgents)
	router.DELETE(baseURL+"/api/v1/agents/:id", wrapper.DeleteAgent)
	router.POST(baseURL+"/api/v1/agents/:id/approve", wrapper.ApproveAgent)
	router.POST(baseURL+"/api/v1/agents/:id/reject", wrapper.RejectAgent)
	router.POST(baseURL+"/api/v1/agents/:id/debt/add", wrapper.AddDebt)
	router.POST(baseURL+"/api/v1/agents/:id/debt/pay", wrapper.RecordPayment)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.DELETE(baseURL+"/api/v1/orders/:id", wrapper.DeleteOrder)
	router.GET(baseURL+"/api/v1/parameters", wrapper.GetParameters)
	router.PUT(baseURL+"/api/v1/parameters", wrapper.UpdateParameters)
	router.GET(baseURL+"/api/v1/parameters/quote", wrapper.QuoteFare)
	router.GET(baseURL+"/api/v1/statistics", wrapper.GetStatistics)
}
