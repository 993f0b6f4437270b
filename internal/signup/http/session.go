package http

import (
	"net/http"

	"github.com/delveng/signup/internal/signup/service"
	"github.com/delveng/signup/pkg/httpx"
	"github.com/delveng/signup/pkg/slogx"
)

type SessionHandler struct {
	Flows *service.FlowService
}

// ServeHTTP godoc
//
//	@Summary		Sign out
//	@Description	Forgets the registration API session token stored for this device.
//	@Tags			Session
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Security		FlowToken
//	@Router			/v1/session [delete].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Flows.SignOut(ctx, httpx.DeviceIDFromContext(ctx)); err != nil {
		slogx.FromContext(ctx).Error("sign out failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
