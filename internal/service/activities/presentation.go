package activities

import (
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

const unknownLabel = "Desconocido"

type appearance struct {
	icon  string
	color string
}

var appearances = map[domain.ActivityType]appearance{
	domain.ActivityLogin:                {icon: "Login", color: "success"},
	domain.ActivityLoginFailed:          {icon: "LoginError", color: "error"},
	domain.ActivityProfileUpdated:       {icon: "Person", color: "info"},
	domain.ActivityReservationCreated:   {icon: "LocalTaxi", color: "success"},
	domain.ActivityReservationCancelled: {icon: "Cancel", color: "warning"},
}

// activityIcon иконка для типа записи
func activityIcon(t domain.ActivityType) string {
	if a, ok := appearances[t]; ok {
		return a.icon
	}
	return "Info"
}

// activityColor цвет для типа записи
func activityColor(t domain.ActivityType) string {
	if a, ok := appearances[t]; ok {
		return a.color
	}
	return "default"
}

// describeUserAgent превращает User-Agent в подпись вида "Chrome en Windows"
func describeUserAgent(ua *string) string {
	if ua == nil || *ua == "" {
		return unknownLabel
	}
	return detectBrowser(*ua) + " en " + detectOS(*ua)
}

func detectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	}
	return unknownLabel
}

// Мобильные платформы проверяются раньше: их UA содержат "Linux" и "Mac OS X"
func detectOS(ua string) string {
	switch {
	case strings.Contains(ua, "Windows"):
		return "Windows"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		return "iOS"
	case strings.Contains(ua, "Mac"):
		return "macOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	}
	return unknownLabel
}
