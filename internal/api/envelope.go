package api

import "github.com/danielgtaylor/huma/v2"

// EnvelopeVersion is the wire format version carried in every response.
// Bump only when the envelope structure itself changes.
const EnvelopeVersion = 1

// successEnvelope wraps successful response bodies.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope wraps failed response bodies. Simple errors carry only
// the error string; detailed errors carry code, message and details.
type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope. Clients dispatch on the "success" field before reading
// "data", so the field names here are a wire contract.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code == "" {
			return &errorEnvelope{
				V:       EnvelopeVersion,
				Success: false,
				Error:   apiErr.Message,
			}, nil
		}
		return &errorEnvelope{
			V:       EnvelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if statusErr, ok := v.(huma.StatusError); ok {
		return &errorEnvelope{
			V:       EnvelopeVersion,
			Success: false,
			Error:   statusErr.Error(),
		}, nil
	}

	return &successEnvelope{
		V:       EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
