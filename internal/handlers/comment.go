package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/VitaminP8/bloggery/internal/auth"
)

type commentRequest struct {
	Text     string `json:"text"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// AddComment доступен любому аутентифицированному пользователю
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAuthenticated(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid post id"})
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body"})
		return
	}

	c, err := h.Comments.CreateComment(r.Context(), postID, req.ParentID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid post id"})
		return
	}

	comments, err := h.Comments.GetComments(postID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

// StreamComments отдает новые комментарии поста как server-sent events
func (h *Handler) StreamComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid post id"})
		return
	}

	if _, err := h.Posts.GetPostById(postID); err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{"streaming unsupported"})
		return
	}

	ch, cancel := h.Subs.Subscribe(postID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(toCommentResponse(c))
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
