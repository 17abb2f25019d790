package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound возвращается, когда пользователь из токена не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrWrongPassword возвращается, когда текущий пароль при смене не совпал
	ErrWrongPassword = errors.New("current password does not match")

	// ErrNothingToUpdate возвращается, когда в запросе нет полей профиля
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
