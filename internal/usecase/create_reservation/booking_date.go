package create_reservation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

var (
	compactOffsetRe = regexp.MustCompile(`[+-]\d{4}$`)
	colonOffsetRe   = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)
)

// Форматы с явным смещением
var offsetLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04-0700",
	"2006-01-02 15:04:05-0700",
}

// Форматы без смещения, интерпретируются в часовом поясе сервера
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// normalizeBookingDate приводит дату к формату провайдера ("...+0200") и возвращает момент времени.
// Смещение без двоеточия передаётся как есть, смещение с двоеточием теряет двоеточие,
// остальные значения пересчитываются в часовой пояс loc.
func normalizeBookingDate(raw string, loc *time.Location) (string, time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", time.Time{}, fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	switch {
	case compactOffsetRe.MatchString(value):
		instant, err := parseWithLayouts(value, offsetLayouts, time.UTC)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%w: invalid bookingDate %q", ErrInvalidInput, raw)
		}
		return value, instant, nil

	case colonOffsetRe.MatchString(value):
		instant, err := parseWithLayouts(value, offsetLayouts, time.UTC)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%w: invalid bookingDate %q", ErrInvalidInput, raw)
		}
		cut := len(value) - 3
		return value[:cut] + value[cut+1:], instant, nil

	case strings.HasSuffix(value, "Z"):
		instant, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%w: invalid bookingDate %q", ErrInvalidInput, raw)
		}
		local := instant.In(loc)
		return local.Format(domain.ProviderDateLayout), local, nil

	default:
		local, err := parseWithLayouts(value, localLayouts, loc)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("%w: invalid bookingDate %q", ErrInvalidInput, raw)
		}
		return local.Format(domain.ProviderDateLayout), local, nil
	}
}

func parseWithLayouts(value string, layouts []string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
