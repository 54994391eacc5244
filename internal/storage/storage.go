package storage

import "errors"

// ErrUnavailable - неожиданный сбой на уровне хранилища (например, потеря
// соединения). Действие отклоняется, а не продолжается
var ErrUnavailable = errors.New("storage unavailable")
