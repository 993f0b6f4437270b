package regsdk

import (
	"context"
	"strings"
)

// SubmitRegistration sends an early-access registration.
//
// A response is accepted when its code is 1 or its message mentions success.
// Non-2xx responses are inspected the same way, since the API reports some
// outcomes only in the body.
//
// Endpoint: POST /early-registration
func (c *Client) SubmitRegistration(ctx context.Context, req RegistrationRequest) (*RegistrationResponse, error) {
	status, raw, err := c.postJSON(ctx, OpRegister, "/early-registration", req.body())
	if err != nil {
		return nil, err
	}

	env := decodeEnvelope[any](raw)
	if env.Code == 1 || strings.Contains(strings.ToLower(env.Message), "success") {
		return &RegistrationResponse{Code: env.Code, Type: env.Type, Message: env.Message}, nil
	}

	if len(env.Errors) > 0 {
		fields := make(map[string][]string, len(env.Errors))
		for k, v := range env.Errors {
			fields[k] = v
		}
		return nil, &ValidationError{StatusCode: status, Fields: fields}
	}

	msg := env.Message
	if msg == "" {
		msg = MsgRegistrationFailed
	}
	return nil, &GenericError{StatusCode: status, Message: msg}
}
