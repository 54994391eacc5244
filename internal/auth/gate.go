package auth

import (
	"context"

	"github.com/VitaminP8/bloggery/internal/user"
)

// CurrentUser возвращает идентичность, привязанную к текущему запросу
func CurrentUser(ctx context.Context) (uint, error) {
	return GetUserIDFromContext(ctx)
}

// RequireAuthenticated требует открытой сессии
func RequireAuthenticated(ctx context.Context) (uint, error) {
	return GetUserIDFromContext(ctx)
}

// IsAdmin проверяет роль пользователя через справочник пользователей
func IsAdmin(users user.UserStorage, userID uint) bool {
	u, err := users.FindById(userID)
	if err != nil {
		return false
	}
	return u.IsAdmin()
}

// RequireAdmin требует, чтобы текущая сессия принадлежала администратору.
// Вызывается до любой мутации хранилища
func RequireAdmin(ctx context.Context, users user.UserStorage) (uint, error) {
	userID, err := RequireAuthenticated(ctx)
	if err != nil {
		return 0, err
	}
	if !IsAdmin(users, userID) {
		return 0, ErrForbidden
	}
	return userID, nil
}
