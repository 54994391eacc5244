package auth

import (
	"context"
	"errors"
	"fmt"
)

type contextKey string

const userIDKey = contextKey("userID")

var (
	// ErrUnauthenticated - запрос без привязанной сессии
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden - действие доступно только администратору
	ErrForbidden = errors.New("forbidden: admin only")
)

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok {
		return 0, fmt.Errorf("%w: user ID not found in context", ErrUnauthenticated)
	}
	return id, nil
}
