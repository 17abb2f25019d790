package mailer

// ReservationEmail данные для писем о новой брони
type ReservationEmail struct {
	BookingID           string
	ServiceID           *string
	ProviderName        *string
	Date                string // dd/mm/yyyy
	Time                string // HH:MM
	PickupAddress       string
	DestinationAddress  string
	Passengers          int
	VehicleType         string
	Extras              string
	SpecialInstructions *string

	// Только для письма администрации
	UserName  string
	UserEmail string
	UserPhone string
	Account   string
}

// Message готовое письмо
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}
