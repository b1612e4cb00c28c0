package rest

import "net/http"

// handleReset truncates all records. The route is only registered when
// the server is started with test routes enabled.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.reset.Reset(r.Context()); err != nil {
		writeDomainError(w, "reset database", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
