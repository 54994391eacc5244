package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential - сохраненный хеш имеет неверный формат
var ErrCorruptCredential = errors.New("corrupt credential hash")

// Hash хеширует пароль bcrypt-ом со случайной солью.
// Один и тот же пароль дает разные хеши при повторных вызовах.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify проверяет пароль против сохраненного хеша (сравнение за константное время).
// Несовпадение - это (false, nil), ошибка возвращается только на битом хеше.
func Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
}
