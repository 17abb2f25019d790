package auriga

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Signer подписывает запросы к провайдеру.
// Подпись: SHA-1 (hex, нижний регистр) от конкатенации полей без разделителей.
type Signer struct {
	clientID  string
	clientKey string
}

// NewSigner создает подписчика с учётными данными клиента
func NewSigner(clientID, clientKey string) *Signer {
	return &Signer{clientID: clientID, clientKey: clientKey}
}

// CreateSignature подпись запроса на создание бронирования
func (s *Signer) CreateSignature(p *BookingPayload) string {
	return digest(s.createSignatureString(p))
}

// CancelSignature подпись запроса на отмену бронирования
func (s *Signer) CancelSignature(providerBookingID string) string {
	return digest(s.clientKey + s.clientID + providerBookingID)
}

// AuthHeader значение заголовка авторизации: "clientId:signature"
func (s *Signer) AuthHeader(signature string) string {
	return s.clientID + ":" + signature
}

// createSignatureString собирает строку для подписи.
// Необязательные поля участвуют только если они не nil; bookingId не участвует никогда.
func (s *Signer) createSignatureString(p *BookingPayload) string {
	var b strings.Builder

	b.WriteString(s.clientKey)
	b.WriteString(s.clientID)
	b.WriteString(p.BookingDate)
	b.WriteString(p.ClientName)
	writeOptional(&b, p.PhoneNumber)

	writeAddress(&b, &p.PickupAddress)
	if p.DestinationAddress != nil {
		writeAddress(&b, p.DestinationAddress)
	}

	writeOptional(&b, p.Special)
	for _, code := range p.Preferences {
		b.WriteString(code)
	}
	writeOptional(&b, p.ProviderID)
	writeOptional(&b, p.URLHook)
	if p.Flight != nil {
		b.WriteString(p.Flight.FlightNo)
		b.WriteString(p.Flight.ArrivalTime)
		b.WriteString(p.Flight.Origin)
	}
	writeOptional(&b, p.Account)
	writeOptional(&b, p.AccountPassword)
	writeOptional(&b, p.AccountReference)
	writeOptional(&b, p.LockedPrice)

	return b.String()
}

func writeAddress(b *strings.Builder, a *Address) {
	b.WriteString(a.Latitude)
	b.WriteString(a.Longitude)
	b.WriteString(a.BldgNumber)
	b.WriteString(a.Street)
	b.WriteString(a.Locality)
	b.WriteString(a.Town)
	b.WriteString(a.Country)
}

func writeOptional(b *strings.Builder, v *string) {
	if v != nil {
		b.WriteString(*v)
	}
}

func digest(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
