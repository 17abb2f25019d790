package domain

// PredefinedLocation is a well-known pickup point (airport terminal, station, hotel)
type PredefinedLocation struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  *string `json:"category"`
	Icon      *string `json:"icon"`
	IsActive  bool    `json:"is_active"`
}

// CategoryOrDefault returns the category or DefaultLocationCategory
func (l *PredefinedLocation) CategoryOrDefault() string {
	if l.Category == nil || *l.Category == "" {
		return DefaultLocationCategory
	}
	return *l.Category
}
