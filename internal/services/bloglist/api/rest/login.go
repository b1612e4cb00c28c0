package rest

import "net/http"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.creds.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:    session.Token,
		Username: session.Username,
		Name:     session.Name,
	})
}
