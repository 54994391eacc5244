package handlers

import (
	"log"
	"net/http"

	"github.com/VitaminP8/bloggery/internal/mailer"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	Message string `json:"message"`
}

// Contact пересылает сообщение контактной формы на настроенный адрес
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"name, email and message are required"})
		return
	}

	err := h.Mailer.Send(mailer.Message{
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Message,
	})
	if err != nil {
		log.Println(err)
		writeJSON(w, http.StatusBadGateway, errorResponse{"An error occurred while sending your message"})
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{"Your message has been sent successfully!"})
}
