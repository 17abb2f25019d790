package mailer

import "errors"

var (
	// ErrRender возвращается при ошибке шаблона письма
	ErrRender = errors.New("mailer: failed to render template")

	// ErrSend возвращается при ошибке отправки через SMTP
	ErrSend = errors.New("mailer: failed to send message")

	// ErrNoRecipient возвращается, когда адрес получателя пуст
	ErrNoRecipient = errors.New("mailer: recipient address is empty")
)
