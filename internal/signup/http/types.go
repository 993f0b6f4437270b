package http

import (
	"time"

	"github.com/delveng/signup/internal/signup/flow"
)

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error            string `json:"error" example:"invalid_transition"`
	ErrorDescription string `json:"error_description" example:"operation not allowed in current state"`
}

// FlowErrorResponse is an error that also carries the flow's state, so the
// page can show field errors or the banner message.
type FlowErrorResponse struct {
	Error            string     `json:"error" example:"validation_failed"`
	ErrorDescription string     `json:"error_description"`
	Flow             *flow.View `json:"flow,omitempty"`
}

// CreateFlowResponse is returned when a flow starts.
type CreateFlowResponse struct {
	FlowToken string    `json:"flow_token"`
	ExpiresAt time.Time `json:"expires_at"`
	Flow      flow.View `json:"flow"`
}

// IdentityRequest reports the identity provider popup's result. Exactly one
// of AccessToken or Error is set.
type IdentityRequest struct {
	AccessToken string `json:"access_token,omitempty"`
	Error       string `json:"error,omitempty" example:"popup_closed"`
}

// HealthResponse is returned by the health probes.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Flows    int    `json:"flows" example:"3"`
}
