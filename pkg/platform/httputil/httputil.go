// Package httputil writes the JSON envelope shared by every BFF response:
// {"success":true,"data":...} or {"success":false,"error":...}.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "assetdesk/pkg/domain-errors"
)

type envelope struct {
	Success          bool   `json:"success"`
	Data             any    `json:"data,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	RedirectTo       string `json:"redirect_to,omitempty"`
}

// WriteJSON writes a success envelope around data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Success: true, Data: data})
}

// WriteError translates a coded error into status and envelope. Internal
// errors never leak their description.
func WriteError(w http.ResponseWriter, err error) {
	status, env := statusAndEnvelope(err)
	write(w, status, env)
}

// WriteRedirect writes a failure envelope telling the browser where to go.
// Used for forced logout and role guard outcomes.
func WriteRedirect(w http.ResponseWriter, err error, location string) {
	status, env := statusAndEnvelope(err)
	env.RedirectTo = location
	write(w, status, env)
}

func statusAndEnvelope(err error) (int, envelope) {
	code := dErrors.CodeOf(err)
	env := envelope{Success: false, Error: string(code)}
	if de, ok := dErrors.As(err); ok && code != dErrors.CodeInternal {
		env.ErrorDescription = de.Message
	}
	return dErrors.ToHTTPStatus(code), env
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
