package rest

import (
	"net/http"
	"strings"

	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
)

type createBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type updateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

type blogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID string `json:"userId"`
}

type ownerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type blogWithOwnerResponse struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Author string        `json:"author"`
	URL    string        `json:"url"`
	Likes  int           `json:"likes"`
	User   ownerResponse `json:"user"`
}

func toBlogResponse(blog domain.Blog) blogResponse {
	return blogResponse{
		ID:     blog.ID,
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
		Likes:  blog.Likes,
		UserID: blog.OwnerID,
	}
}

func (h *Handler) handleBlogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listBlogs(w, r)
	case http.MethodPost:
		h.createBlog(w, r)
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeDomainError(w, "list blogs", err)
		return
	}

	payload := make([]blogWithOwnerResponse, 0, len(blogs))
	for _, entry := range blogs {
		payload = append(payload, blogWithOwnerResponse{
			ID:     entry.Blog.ID,
			Title:  entry.Blog.Title,
			Author: entry.Blog.Author,
			URL:    entry.Blog.URL,
			Likes:  entry.Blog.Likes,
			User: ownerResponse{
				ID:       entry.Owner.ID,
				Username: entry.Owner.Username,
				Name:     entry.Owner.Name,
			},
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) createBlog(w http.ResponseWriter, r *http.Request) {
	identity, err := h.gate.Resolve(r.Context(), bearerToken(r))
	if err != nil {
		writeDomainError(w, "resolve identity", err)
		return
	}

	var req createBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.blogs.Create(r.Context(), identity, domain.CreateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		writeDomainError(w, "create blog", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBlogResponse(blog))
}

func (h *Handler) handleBlogByID(w http.ResponseWriter, r *http.Request) {
	blogID := strings.TrimPrefix(r.URL.Path, blogsPrefix)
	if blogID == "" || strings.Contains(blogID, "/") {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateBlog(w, r, blogID)
	case http.MethodDelete:
		h.deleteBlog(w, r, blogID)
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) updateBlog(w http.ResponseWriter, r *http.Request, blogID string) {
	var req updateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.blogs.Update(r.Context(), blogID, domain.UpdateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		writeDomainError(w, "update blog", err)
		return
	}
	writeJSON(w, http.StatusOK, toBlogResponse(blog))
}

func (h *Handler) deleteBlog(w http.ResponseWriter, r *http.Request, blogID string) {
	identity, err := h.gate.Resolve(r.Context(), bearerToken(r))
	if err != nil {
		writeDomainError(w, "resolve identity", err)
		return
	}

	if err := h.blogs.Delete(r.Context(), identity, blogID); err != nil {
		writeDomainError(w, "delete blog", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
