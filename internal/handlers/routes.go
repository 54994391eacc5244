package handlers

import (
	"github.com/gorilla/mux"
)

// Routes собирает роутер. Сессионный middleware кладет userID в контекст,
// проверки прав выполняются в самих обработчиках
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.Sessions.Middleware)

	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")
	r.HandleFunc("/me", h.Me).Methods("GET")

	r.HandleFunc("/posts", h.ListPosts).Methods("GET")
	r.HandleFunc("/posts", h.CreatePost).Methods("POST")
	r.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}", h.UpdatePost).Methods("PUT")
	r.HandleFunc("/posts/{id:[0-9]+}", h.DeletePost).Methods("DELETE")

	r.HandleFunc("/posts/{id:[0-9]+}/comments", h.ListComments).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/comments", h.AddComment).Methods("POST")
	r.HandleFunc("/posts/{id:[0-9]+}/comments/stream", h.StreamComments).Methods("GET")

	r.HandleFunc("/contact", h.Contact).Methods("POST")

	return r
}
