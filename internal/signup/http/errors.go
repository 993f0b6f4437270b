package http

import (
	"errors"
	"net/http"

	"github.com/delveng/signup/internal/signup/flow"
	"github.com/delveng/signup/internal/signup/service"
	"github.com/delveng/signup/pkg/httpx"
	"github.com/delveng/signup/pkg/regsdk"
	"github.com/delveng/signup/pkg/slogx"
)

const maxBodyBytes = 16 << 10

// writeFlowError maps flow and service errors to responses. view, when
// non-nil, is included so the page can render errors.
func writeFlowError(w http.ResponseWriter, r *http.Request, err error, view *flow.View) {
	status, code := http.StatusInternalServerError, "server_error"
	desc := "internal server error"

	var (
		remote *flow.RemoteError
		netErr *regsdk.NetworkError
	)
	switch {
	case errors.Is(err, service.ErrFlowNotFound):
		status, code, desc = http.StatusNotFound, "flow_not_found", "flow not found or expired; start a new one"
	case errors.Is(err, flow.ErrBusy):
		status, code, desc = http.StatusConflict, "busy", "another operation is in progress"
	case errors.Is(err, flow.ErrInvalidTransition):
		status, code, desc = http.StatusConflict, "invalid_transition", "operation not allowed in current state"
	case errors.Is(err, flow.ErrInvalidInput):
		status, code, desc = http.StatusUnprocessableEntity, "validation_failed", "one or more fields are invalid"
	case errors.As(err, &netErr):
		status, code, desc = http.StatusBadGateway, "upstream_unavailable", regsdk.Message(err)
	case errors.As(err, &remote):
		status, code = http.StatusUnprocessableEntity, "registration_rejected"
		if remote.Step != flow.StepRegistration {
			code = "identity_rejected"
		}
		desc = "the remote service rejected the request"
		if view != nil && view.Flow.Error != "" {
			desc = view.Flow.Error
		}
	default:
		slogx.FromContext(r.Context()).Error("unhandled flow error", "error", err)
	}

	if view == nil {
		httpx.WriteError(w, status, code, desc)
		return
	}
	httpx.WriteJSON(w, status, FlowErrorResponse{Error: code, ErrorDescription: desc, Flow: view})
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
}
