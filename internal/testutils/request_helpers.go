package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// CreateTestRequest builds a request carrying the cart session token plus
// any path params the handler reads with PathValue.
func CreateTestRequest(method, target string, body io.Reader, sessionID string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}
