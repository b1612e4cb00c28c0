package rest

import (
	"net/http"

	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
)

type registerUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type userWithBlogsResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Blogs    []blogResponse `json:"blogs"`
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listUsers(w, r)
	case http.MethodPost:
		h.registerUser(w, r)
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.creds.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, "list users", err)
		return
	}

	payload := make([]userWithBlogsResponse, 0, len(users))
	for _, entry := range users {
		blogs := make([]blogResponse, 0, len(entry.Blogs))
		for _, blog := range entry.Blogs {
			blogs = append(blogs, toBlogResponse(blog))
		}
		payload = append(payload, userWithBlogsResponse{
			ID:       entry.User.ID,
			Username: entry.User.Username,
			Name:     entry.User.Name,
			Blogs:    blogs,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.creds.Register(r.Context(), domain.RegisterUserInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, "register user", err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	})
}
