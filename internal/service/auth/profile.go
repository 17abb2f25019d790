package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

const (
	minNameLength  = 3
	minPhoneLength = 9
)

// profileUpdate проверяет запрос и собирает изменения профиля.
// Возвращает список изменённых полей для журнала.
func profileUpdate(req *models.UpdateProfileRequest) (*domain.UserProfileUpdate, []string, error) {
	upd := &domain.UserProfileUpdate{}
	var problems, fields []string

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		switch {
		case name == "":
			problems = append(problems, "El nombre no puede estar vacío")
		case utf8.RuneCountInString(name) < minNameLength:
			problems = append(problems, fmt.Sprintf("El nombre debe tener al menos %d caracteres", minNameLength))
		default:
			upd.Name = &name
			fields = append(fields, "nombre")
		}
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			upd.ClearPhone = true
			fields = append(fields, "teléfono")
		} else {
			phone = normalizePhone(phone)
			if len(phone) < minPhoneLength {
				problems = append(problems, "Teléfono inválido")
			} else {
				upd.Phone = &phone
				fields = append(fields, "teléfono")
			}
		}
	}

	if req.Account != nil {
		account := strings.TrimSpace(*req.Account)
		if account == "" {
			upd.ClearAccount = true
		} else {
			upd.Account = &account
		}
		fields = append(fields, "número de abonado")
	}

	if len(problems) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	if len(fields) == 0 {
		return nil, nil, ErrNothingToUpdate
	}
	return upd, fields, nil
}

// normalizePhone оставляет только цифры и '+'
func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
