package api

import "encoding/json"

type CheckRequest struct {
	Password string `json:"password"`
}

// CheckResponse is the wire shape of POST /api/check. Error is set instead of
// the other fields when the service rejects the request (e.g. rate limiting).
type CheckResponse struct {
	Strength    string   `json:"strength,omitempty"`
	Score       int      `json:"score"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type GenerateResponse struct {
	Password string `json:"password,omitempty"`
	Error    string `json:"error,omitempty"`
}

type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Body)
}

// ParseErrorMessage extracts the error field from a JSON error body, if present.
func ParseErrorMessage(body []byte) (string, bool) {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	if envelope.Error == "" {
		return "", false
	}
	return envelope.Error, true
}
