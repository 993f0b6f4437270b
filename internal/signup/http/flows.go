package http

import (
	"net/http"

	"github.com/delveng/signup/internal/signup/domain"
	"github.com/delveng/signup/internal/signup/flow"
	"github.com/delveng/signup/internal/signup/service"
	"github.com/delveng/signup/pkg/httpx"
	"github.com/delveng/signup/pkg/slogx"
)

// FlowsHandler serves the signup flow endpoints.
type FlowsHandler struct {
	Flows *service.FlowService
}

// HandleCreate godoc
//
//	@Summary		Start a signup flow
//	@Description	Creates a flow on the welcome page and returns its handle. Send a previous handle as a bearer token to keep the device and its stored session.
//	@Tags			Flows
//	@Produce		json
//	@Success		201	{object}	CreateFlowResponse
//	@Failure		429	{object}	ErrorResponse
//	@Router			/v1/flows [post].
func (h *FlowsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	prev, _ := httpx.BearerToken(r)

	handle, view, err := h.Flows.CreateFlow(r.Context(), prev)
	if err != nil {
		writeFlowError(w, r, err, nil)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, CreateFlowResponse{
		FlowToken: handle.Token,
		ExpiresAt: handle.ExpiresAt,
		Flow:      view,
	})
}

// journey resolves the flow named by the request's handle. It writes the error
// response itself and returns nil on failure.
func (h *FlowsHandler) journey(w http.ResponseWriter, r *http.Request) *flow.Journey {
	ctx := r.Context()
	j, err := h.Flows.Journey(httpx.FlowIDFromContext(ctx), httpx.DeviceIDFromContext(ctx))
	if err != nil {
		writeFlowError(w, r, err, nil)
		return nil
	}
	return j
}

// signup resolves the journey and its controller. The controller is only
// reachable after the welcome page.
func (h *FlowsHandler) signup(w http.ResponseWriter, r *http.Request) (*flow.Journey, *flow.Controller) {
	j := h.journey(w, r)
	if j == nil {
		return nil, nil
	}
	ctrl, err := j.Signup()
	if err != nil {
		view := j.View()
		writeFlowError(w, r, err, &view)
		return nil, nil
	}
	return j, ctrl
}

// respond writes the journey's view, or the error with the view attached.
func respond(w http.ResponseWriter, r *http.Request, j *flow.Journey, err error) {
	view := j.View()
	if err != nil {
		writeFlowError(w, r, err, &view)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// HandleGet godoc
//
//	@Summary	Current flow state
//	@Tags		Flows
//	@Produce	json
//	@Success	200	{object}	flow.View
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	FlowToken
//	@Router		/v1/flows/current [get].
func (h *FlowsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if j := h.journey(w, r); j != nil {
		respond(w, r, j, nil)
	}
}

// HandleStart godoc
//
//	@Summary	Leave the welcome page
//	@Tags		Flows
//	@Produce	json
//	@Success	200	{object}	flow.View
//	@Failure	409	{object}	FlowErrorResponse
//	@Security	FlowToken
//	@Router		/v1/flows/current/start [post].
func (h *FlowsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if j := h.journey(w, r); j != nil {
		respond(w, r, j, j.Router.Start())
	}
}

// HandleDraft godoc
//
//	@Summary	Edit the account form
//	@Tags		Flows
//	@Accept		json
//	@Produce	json
//	@Param		request	body		domain.RegistrationDraft	true	"Form contents"
//	@Success	200		{object}	flow.View
//	@Failure	409		{object}	FlowErrorResponse
//	@Security	FlowToken
//	@Router		/v1/flows/current/draft [put].
func (h *FlowsHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	var d domain.RegistrationDraft
	if err := httpx.DecodeJSON(w, r, &d, maxBodyBytes); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if j, ctrl := h.signup(w, r); j != nil {
		respond(w, r, j, ctrl.UpdateDraft(d))
	}
}

// HandleSubmit godoc
//
//	@Summary		Submit the account form
//	@Description	Validates the form. On success the preferences questionnaire opens.
//	@Tags			Flows
//	@Produce		json
//	@Success		200	{object}	flow.View
//	@Failure		422	{object}	FlowErrorResponse	"field errors are in flow.flow.fieldErrors"
//	@Failure		409	{object}	FlowErrorResponse
//	@Security		FlowToken
//	@Router			/v1/flows/current/submit [post].
func (h *FlowsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if j, ctrl := h.signup(w, r); j != nil {
		respond(w, r, j, ctrl.SubmitLocal())
	}
}

// HandleIdentity godoc
//
//	@Summary		Report the identity provider result
//	@Description	Send the provider access token to pre-fill the form and open the questionnaire, or an error when the popup was closed or failed.
//	@Tags			Flows
//	@Accept			json
//	@Produce		json
//	@Param			request	body		IdentityRequest	true	"Provider result"
//	@Success		200		{object}	flow.View
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	FlowErrorResponse
//	@Failure		422		{object}	FlowErrorResponse
//	@Security		FlowToken
//	@Router			/v1/flows/current/identity [post].
func (h *FlowsHandler) HandleIdentity(w http.ResponseWriter, r *http.Request) {
	var req IdentityRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if (req.AccessToken == "") == (req.Error == "") {
		writeBadRequest(w, "exactly one of access_token or error is required")
		return
	}

	j, ctrl := h.signup(w, r)
	if j == nil {
		return
	}

	if req.Error != "" {
		slogx.FromContext(r.Context()).Info("identity provider reported failure", "reason", req.Error)
		respond(w, r, j, ctrl.FailIdentitySignup())
		return
	}
	respond(w, r, j, ctrl.BeginIdentitySignup(r.Context(), req.AccessToken))
}

// HandleUpdatePreferences godoc
//
//	@Summary	Edit the questionnaire answers
//	@Tags		Flows
//	@Accept		json
//	@Produce	json
//	@Param		request	body		domain.PreferencesDraft	true	"Answers"
//	@Success	200		{object}	flow.View
//	@Failure	409		{object}	FlowErrorResponse
//	@Security	FlowToken
//	@Router		/v1/flows/current/preferences [put].
func (h *FlowsHandler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var p domain.PreferencesDraft
	if err := httpx.DecodeJSON(w, r, &p, maxBodyBytes); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if j, ctrl := h.signup(w, r); j != nil {
		respond(w, r, j, ctrl.UpdatePreferences(p))
	}
}

// HandleSubmitPreferences godoc
//
//	@Summary		Submit the registration
//	@Description	Validates the answers, then exchanges the identity token (if any) and submits the registration. On success the completion page is shown.
//	@Tags			Flows
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.PreferencesDraft	true	"Answers"
//	@Success		200		{object}	flow.View
//	@Failure		409		{object}	FlowErrorResponse
//	@Failure		422		{object}	FlowErrorResponse
//	@Failure		502		{object}	FlowErrorResponse
//	@Security		FlowToken
//	@Router			/v1/flows/current/preferences [post].
func (h *FlowsHandler) HandleSubmitPreferences(w http.ResponseWriter, r *http.Request) {
	var p domain.PreferencesDraft
	if err := httpx.DecodeJSON(w, r, &p, maxBodyBytes); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	ctx := r.Context()
	view, err := h.Flows.SubmitPreferences(ctx, httpx.FlowIDFromContext(ctx), httpx.DeviceIDFromContext(ctx), p)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, view)
	case view.Page == "":
		// no journey was found
		writeFlowError(w, r, err, nil)
	default:
		writeFlowError(w, r, err, &view)
	}
}

// HandleCancel godoc
//
//	@Summary	Close the questionnaire
//	@Tags		Flows
//	@Produce	json
//	@Success	200	{object}	flow.View
//	@Failure	409	{object}	FlowErrorResponse
//	@Security	FlowToken
//	@Router		/v1/flows/current/cancel [post].
func (h *FlowsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if j, ctrl := h.signup(w, r); j != nil {
		respond(w, r, j, ctrl.Cancel())
	}
}
