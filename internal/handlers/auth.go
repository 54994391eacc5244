package handlers

import (
	"net/http"

	"github.com/VitaminP8/bloggery/internal/auth"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Register создает пользователя и сразу открывает для него сессию
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"name, email and password are required"})
		return
	}

	u, err := h.Users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.Sessions.StartSession(w, u.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(u), Token: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body"})
		return
	}

	userID, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	u, err := h.Users.FindById(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.Sessions.StartSession(w, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(u), Token: token})
}

// Logout закрывает сессию текущего пользователя. Повторный вызов - такой же no-op
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAuthenticated(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	h.Sessions.EndSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me возвращает пользователя текущей сессии
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	u, err := h.Users.FindById(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
