package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/mailer"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/internal/subscription"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

// Handler связывает HTTP-слой с хранилищами, сессиями и почтой.
// Проверки авторизации выполняются здесь, до любых мутаций хранилища
type Handler struct {
	Users    user.UserStorage
	Posts    post.PostStorage
	Comments comment.CommentStorage
	Sessions *auth.SessionManager
	Mailer   mailer.Mailer
	Subs     subscription.Manager
}

type errorResponse struct {
	Error string `json:"error"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type postResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Date         string `json:"date"`
	Body         string `json:"body"`
	ImageURL     string `json:"image_url"`
	AuthorID     uint   `json:"author_id"`
	LastEditorID uint   `json:"last_editor_id"`
}

type commentResponse struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	AuthorID uint   `json:"author_id"`
	PostID   uint   `json:"post_id"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:           p.ID,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Date:         p.Date,
		Body:         p.Body,
		ImageURL:     p.ImageURL,
		AuthorID:     p.UserID,
		LastEditorID: p.LastEditorID,
	}
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:       c.ID,
		Text:     c.Text,
		AuthorID: c.UserID,
		PostID:   c.PostID,
		ParentID: c.ParentID,
	}
}

func toCommentResponses(comments []*models.Comment) []commentResponse {
	result := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, toCommentResponse(c))
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID достает числовой {id} из пути
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// writeError переводит ошибку ядра в HTTP-статус и сообщение для пользователя
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorResponse{"You have already registered. Please log in"})
	case errors.Is(err, user.ErrUnknownEmail):
		writeJSON(w, http.StatusUnauthorized, errorResponse{"This email does not exist in our database."})
	case errors.Is(err, user.ErrWrongPassword):
		writeJSON(w, http.StatusUnauthorized, errorResponse{"Wrong email or password, please try again."})
	case errors.Is(err, auth.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{"Please log in to access this page."})
	case errors.Is(err, auth.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{"Forbidden"})
	case errors.Is(err, post.ErrNotFound),
		errors.Is(err, user.ErrUnknownUser),
		errors.Is(err, comment.ErrParentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
	case errors.Is(err, post.ErrDuplicateTitle):
		writeJSON(w, http.StatusConflict, errorResponse{err.Error()})
	case errors.Is(err, comment.ErrInvalidText), errors.Is(err, comment.ErrParentMismatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
	case errors.Is(err, storage.ErrUnavailable):
		log.Println(err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{"storage unavailable"})
	default:
		log.Println(err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{"internal error"})
	}
}
