package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
	"github.com/matzehuels/frontier/pkg/errors"
)

type errorBody struct {
	Code       string           `json:"code"`
	Error      string           `json:"error"`
	RequestID  string           `json:"request_id,omitempty"`
	Candidates []dataset.Person `json:"candidates,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeAmbiguous:
		return http.StatusConflict
	case errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidPrecondition:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	body := errorBody{Code: string(code), Error: errors.UserMessage(err), RequestID: RequestID(r.Context())}

	var amb *degrees.AmbiguousError
	if stderrors.As(err, &amb) {
		body.Error = amb.Error()
		body.Candidates = amb.Candidates
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", body.RequestID, "err", err)
		if status == http.StatusInternalServerError {
			body.Error = "internal error"
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
