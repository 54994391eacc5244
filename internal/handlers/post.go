package handlers

import (
	"net/http"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
)

type postRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

type postWithCommentsResponse struct {
	Post     postResponse      `json:"post"`
	Comments []commentResponse `json:"comments"`
}

func (r postRequest) toInput() post.Input {
	return post.Input{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		Body:     r.Body,
		ImageURL: r.ImageURL,
	}
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.GetAllPosts()
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostResponse(p))
	}

	writeJSON(w, http.StatusOK, result)
}

// GetPost возвращает пост вместе с его комментариями
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid post id"})
		return
	}

	p, err := h.Posts.GetPostById(id)
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.Comments.GetComments(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postWithCommentsResponse{
		Post:     toPostResponse(p),
		Comments: toCommentResponses(comments),
	})
}

// CreatePost доступен только администратору
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context(), h.Users); err != nil {
		writeError(w, err)
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"title is required"})
		return
	}

	p, err := h.Posts.CreatePost(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(p))
}

// UpdatePost доступен только администратору
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context(), h.Users); err != nil {
		writeError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid post id"})
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"title is required"})
		return
	}

	p, err := h.Posts.UpdatePost(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// DeletePost доступен только администратору.
// Комментарии поста удаляются каскадом
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context(), h.Users); err != nil {
		writeError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid post id"})
		return
	}

	if err := h.Posts.DeletePostById(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	if err := h.Comments.DeleteByPostId(id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
