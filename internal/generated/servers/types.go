// Package servers provides the wire types, the server interface and the embedded OpenAPI
// document of the back-office HTTP API.
package servers

import (
	"encoding/json"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for AgentStatus.
const (
	AgentStatusPending  AgentStatus = "pending"
	AgentStatusApproved AgentStatus = "approved"
	AgentStatusRejected AgentStatus = "rejected"
)

// Defines values for OrderStatus.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Agent defines model for Agent.
type Agent struct {
	Id      openapi_types.UUID `json:"id"`
	Name    string             `json:"name"`
	Phone   string             `json:"phone"`
	Vehicle string             `json:"vehicle"`
	Status  AgentStatus        `json:"status"`
	// Balance is negative when the agent owes the platform.
	Balance int64 `json:"balance"`
}

// AgentStatus defines model for Agent.Status.
type AgentStatus string

// Order defines model for Order.
type Order struct {
	Id                openapi_types.UUID  `json:"id"`
	Origin            string              `json:"origin"`
	Destination       string              `json:"destination"`
	DistanceKm        json.Number         `json:"distanceKm"`
	Fare              int64               `json:"fare"`
	Commission        int64               `json:"commission"`
	Status            OrderStatus         `json:"status"`
	AgentId           *openapi_types.UUID `json:"agentId"`
	CommissionSettled bool                `json:"commissionSettled"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

// Parameters defines model for Parameters. Fields are pointers so that a missing field can be
// told apart from zero.
type Parameters struct {
	BaseFare        *decimal.Decimal `json:"baseFare"`
	PerDistanceFare *decimal.Decimal `json:"perDistanceFare"`
	CommissionRate  *decimal.Decimal `json:"commissionRate"`
}

// ParametersResponse is Parameters as returned by the API.
type ParametersResponse struct {
	BaseFare        int64       `json:"baseFare"`
	PerDistanceFare int64       `json:"perDistanceFare"`
	CommissionRate  json.Number `json:"commissionRate"`
}

// Quote defines model for Quote.
type Quote struct {
	DistanceKm json.Number `json:"distanceKm"`
	Fare       int64       `json:"fare"`
	Commission int64       `json:"commission"`
}

// Statistics defines model for Statistics.
type Statistics struct {
	TotalAgents     int64 `json:"totalAgents"`
	TotalOrders     int64 `json:"totalOrders"`
	TotalCommission int64 `json:"totalCommission"`
	TotalDebt       int64 `json:"totalDebt"`
}

// Deleted defines model for Deleted.
type Deleted struct {
	Deleted openapi_types.UUID `json:"deleted"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AdjustmentRequest is the optional body of the debt endpoints.
type AdjustmentRequest struct {
	Amount *json.Number `json:"amount,omitempty"`
}

// ListAgentsParams defines parameters for ListAgents.
type ListAgentsParams struct {
	IncludeRejected *bool `form:"include_rejected,omitempty" json:"include_rejected,omitempty"`
}

// AdjustBalanceParams defines parameters for AddDebt and RecordPayment.
type AdjustBalanceParams struct {
	// Amount is an alternative to the request body.
	Amount *string `form:"amount,omitempty" json:"amount,omitempty"`
}

// QuoteFareParams defines parameters for QuoteFare.
type QuoteFareParams struct {
	// Distance is the trip length in kilometres.
	Distance string `form:"distance" json:"distance"`
}

// UpdateParametersJSONRequestBody defines body for UpdateParameters for application/json ContentType.
type UpdateParametersJSONRequestBody = Parameters
