package mailer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
)

const adminRecipientName = "Administración TaxiClass"

// Service формирует письма о бронированиях и передаёт их Sender
type Service struct {
	sender  Sender
	appName string
	log     Logger
	now     func() time.Time
}

// NewService создает сервис уведомлений
func NewService(sender Sender, appName string, log Logger) *Service {
	return &Service{
		sender:  sender,
		appName: appName,
		log:     log,
		now:     time.Now,
	}
}

// SendReservationConfirmation письмо пользователю о подтверждённой брони
func (s *Service) SendReservationConfirmation(ctx context.Context, email, name string, data *ReservationEmail) error {
	if strings.TrimSpace(email) == "" {
		return ErrNoRecipient
	}

	view := s.view(name, data)

	var html, text bytes.Buffer
	if err := confirmationHTML.Execute(&html, view); err != nil {
		return fmt.Errorf("%w: confirmation html: %v", ErrRender, err)
	}
	if err := confirmationText.Execute(&text, view); err != nil {
		return fmt.Errorf("%w: confirmation text: %v", ErrRender, err)
	}

	msg := &Message{
		ToEmail:  email,
		ToName:   name,
		Subject:  fmt.Sprintf("Confirmación de Reserva #%s - %s", data.BookingID, s.appName),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: confirmation to %s: %v", ErrSend, email, err)
	}

	s.log.Info("Mailer: confirmation sent booking_id=%s to=%s", data.BookingID, email)
	return nil
}

// SendReservationNotificationToAdmin письмо администрации о новой брони
func (s *Service) SendReservationNotificationToAdmin(ctx context.Context, adminEmail string, data *ReservationEmail) error {
	if strings.TrimSpace(adminEmail) == "" {
		return ErrNoRecipient
	}

	view := s.view(data.UserName, data)

	var html, text bytes.Buffer
	if err := adminHTML.Execute(&html, view); err != nil {
		return fmt.Errorf("%w: admin html: %v", ErrRender, err)
	}
	if err := adminText.Execute(&text, view); err != nil {
		return fmt.Errorf("%w: admin text: %v", ErrRender, err)
	}

	msg := &Message{
		ToEmail:  adminEmail,
		ToName:   adminRecipientName,
		Subject:  fmt.Sprintf("Nueva Reserva #%s - %s", data.BookingID, data.UserName),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: admin notification to %s: %v", ErrSend, adminEmail, err)
	}

	s.log.Info("Mailer: admin notification sent booking_id=%s to=%s", data.BookingID, adminEmail)
	return nil
}

type emailView struct {
	Name    string
	AppName string
	Year    int
	*ReservationEmail
}

func (s *Service) view(name string, data *ReservationEmail) emailView {
	return emailView{
		Name:             name,
		AppName:          s.appName,
		Year:             s.now().Year(),
		ReservationEmail: data,
	}
}
