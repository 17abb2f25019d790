package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestVehicleTypeLabel(t *testing.T) {
	assert.Equal(t, "Vehículo estándar", VehicleTypeLabel(false, false))
	assert.Equal(t, "Vehículo 5-6 plazas (Mercedes Clase V)", VehicleTypeLabel(true, false))
	assert.Equal(t, "Vehículo 7 plazas (Mercedes Clase V)", VehicleTypeLabel(true, true))
}

func TestExtrasLabel(t *testing.T) {
	assert.Equal(t, "Ninguno", ExtrasLabel(false))
	assert.Equal(t, "Alzador infantil", ExtrasLabel(true))
}

func TestPlaceLabel(t *testing.T) {
	assert.Equal(t, "Aeropuerto T1\nVuelo: VY1234 desde París\nTerminal: T1",
		PlaceLabel(PlaceAirport, "Aeropuerto T1", strPtr("VY1234"), strPtr("París"), strPtr("T1")))
	assert.Equal(t, "Estació de Sants", PlaceLabel(PlacePredefined, "Estació de Sants", strPtr("X"), nil, nil))
	assert.Equal(t, "Carrer Gran, 1", PlaceLabel(PlaceAddress, "Carrer Gran, 1", nil, nil, nil))
	assert.Equal(t, "Dirección no especificada", PlaceLabel(PlaceAddress, "", nil, nil, nil))
}

func TestPlaceTypeNormalize(t *testing.T) {
	assert.Equal(t, PlaceAirport, PlaceAirport.Normalize())
	assert.Equal(t, PlaceAddress, PlaceType("google").Normalize())
	assert.Equal(t, PlaceAddress, PlaceType("").Normalize())
}
