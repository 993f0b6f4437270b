package http

import (
	"net/http"

	"github.com/delveng/signup/internal/signup/domain"
	"github.com/delveng/signup/pkg/httpx"
)

// OptionsHandler godoc
//
//	@Summary	Questionnaire choices
//	@Tags		Flows
//	@Produce	json
//	@Success	200	{object}	domain.OptionSets
//	@Router		/v1/options [get].
func OptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, domain.Options())
	}
}
