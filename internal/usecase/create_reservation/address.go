package create_reservation

import (
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// Предопределённые точки обслуживаются только в Барселоне
const (
	predefinedTown    = "Barcelona"
	predefinedCountry = "Spain"
)

// normalizeAddress приводит точку к адресу провайдера. Никогда не возвращает ошибку.
func normalizeAddress(place *domain.Place) domain.NormalizedAddress {
	var out domain.NormalizedAddress
	if place == nil {
		return out
	}

	if place.Type == domain.PlacePredefined {
		if strings.Contains(strings.ToLower(place.Address), strings.ToLower(predefinedTown)) {
			out.Town = predefinedTown
			out.Country = predefinedCountry
		}
		out.Street = place.Address
		return out
	}

	if place.GooglePlace != nil {
		applyComponents(&out, place.GooglePlace.AddressComponents)
		if out.Street == "" {
			out.Street = place.GooglePlace.Name
		}
	}

	// Эвристика по тексту: "улица, ..., город, страна". Может ошибаться на нестандартных адресах.
	if out.Street == "" && place.Address != "" {
		parts := strings.Split(place.Address, ",")
		out.Street = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			out.Town = strings.TrimSpace(parts[len(parts)-2])
			out.Country = strings.TrimSpace(parts[len(parts)-1])
		}
	}

	return out
}

// applyComponents для каждого компонента применяется первое подходящее правило
func applyComponents(out *domain.NormalizedAddress, components []domain.AddressComponent) {
	for _, c := range components {
		switch {
		case c.HasType("street_number"):
			out.BldgNumber = c.LongName
		case c.HasType("route"):
			out.Street = c.LongName
		case hasSublocality(c):
			out.Locality = c.LongName
		case c.HasType("locality"):
			out.Town = c.LongName
		case c.HasType("administrative_area_level_2") && out.Town == "":
			out.Town = c.LongName
		case c.HasType("country"):
			out.Country = c.LongName
		}
	}
}

func hasSublocality(c domain.AddressComponent) bool {
	for _, t := range c.Types {
		if strings.HasPrefix(t, "sublocality") {
			return true
		}
	}
	return false
}
