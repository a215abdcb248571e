package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

// sessionID returns the caller's cart session token, issuing a fresh one
// when the header is absent. The token is always echoed back so the client
// can persist it.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}

	w.Header().Set(SessionHeader, id)

	return id
}
