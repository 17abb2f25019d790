package create_reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

func TestBuildPreferences(t *testing.T) {
	airport := &domain.Place{Type: domain.PlaceAirport}
	address := &domain.Place{Type: domain.PlaceAddress}

	tests := []struct {
		name string
		req  *Request
		want []string
	}{
		{"none", &Request{Pickup: address}, nil},
		{"child seat", &Request{Pickup: address, ChildSeat: true}, []string{"1662"}},
		{
			name: "declaration order regardless of flags",
			req:  &Request{Pickup: airport, Vehicle7Seats: true, ChildSeat: true, Vehicle56Seats: true},
			want: []string{"1662", "1663", "1665", "1666"},
		},
		{"airport only", &Request{Pickup: airport}, []string{"1666"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildPreferences(tt.req))
		})
	}
}
