package domain

// PlaceType is the kind of a place descriptor sent by the client
type PlaceType string

const (
	PlacePredefined PlaceType = "predefined"
	PlaceAirport    PlaceType = "airport"
	PlaceAddress    PlaceType = "address"
)

// Normalize maps unknown kinds to PlaceAddress
func (t PlaceType) Normalize() PlaceType {
	switch t {
	case PlacePredefined, PlaceAirport, PlaceAddress:
		return t
	}
	return PlaceAddress
}

// Place describes a pickup or destination point.
// Coordinates are mandatory for submission to the provider.
type Place struct {
	Type        PlaceType
	Address     string
	Latitude    *float64
	Longitude   *float64
	GooglePlace *MappedPlace

	// Airport extras
	Terminal     *string
	FlightNumber *string
	FlightOrigin *string
}

// HasCoordinates returns true if both coordinates are set
func (p *Place) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// MappedPlace is a place resolved by the maps widget on the client
type MappedPlace struct {
	Name              string             `json:"name"`
	FormattedAddress  string             `json:"formatted_address"`
	AddressComponents []AddressComponent `json:"address_components"`
}

// AddressComponent single component of a mapped place
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// HasType returns true if the component carries the given type
func (c AddressComponent) HasType(t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// NormalizedAddress is the provider's address shape. Fields are never absent, empty string by default.
type NormalizedAddress struct {
	BldgNumber string
	Street     string
	Locality   string
	Town       string
	Country    string
}
