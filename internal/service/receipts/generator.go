package receipts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

const (
	dateTimeLayout = "02/01/2006 15:04"
	qrImageName    = "booking-qr"
	qrSize         = 256
	labelWidth     = 45
	rowHeight      = 7
)

// Фирменные цвета
var (
	brandDark = [3]int{1, 24, 80}
	brandTeal = [3]int{5, 217, 217}
)

// Generator формирует PDF квитанции бронирования
type Generator struct {
	appName  string
	location *time.Location
	now      func() time.Time
}

// NewGenerator создает генератор; даты печатаются в location
func NewGenerator(appName string, location *time.Location) *Generator {
	if location == nil {
		location = time.UTC
	}
	return &Generator{
		appName:  appName,
		location: location,
		now:      time.Now,
	}
}

// Render возвращает PDF документ квитанции
func (g *Generator) Render(res *domain.Reservation, user *domain.User) ([]byte, error) {
	if res == nil || user == nil || res.ProviderBookingID == "" {
		return nil, ErrInvalidReservation
	}

	var pickup, destination domain.StoredAddress
	if err := json.Unmarshal(res.PickupAddress, &pickup); err != nil {
		return nil, fmt.Errorf("%w: pickup address: %v", ErrInvalidReservation, err)
	}
	var destPtr *domain.StoredAddress
	if len(res.DestinationAddress) > 0 && string(res.DestinationAddress) != "null" {
		if err := json.Unmarshal(res.DestinationAddress, &destination); err != nil {
			return nil, fmt.Errorf("%w: destination address: %v", ErrInvalidReservation, err)
		}
		destPtr = &destination
	}
	var passengers domain.PassengersDetails
	if err := json.Unmarshal(res.PassengersDetails, &passengers); err != nil {
		return nil, fmt.Errorf("%w: passengers details: %v", ErrInvalidReservation, err)
	}

	qrPNG, err := qrcode.Encode(qrPayload(g.appName, res), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: qr code: %v", ErrRender, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(g.appName+" - Comprobante de Reserva", true)
	pdf.SetAuthor(g.appName, true)
	pdf.SetCreationDate(g.now())
	pdf.AddPage()

	// Шапка
	pdf.SetFillColor(brandDark[0], brandDark[1], brandDark[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 16, tr(g.appName+" - Comprobante de Reserva"), "", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(brandDark[0], brandDark[1], brandDark[2])
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(130, 10, tr("Referencia de Reserva: #"+res.ProviderBookingID), "", 1, "L", false, 0, "")

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrImageName, 160, 34, 36, 36, false, imageOpts, 0, "")

	section := func(title string) {
		pdf.Ln(3)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(brandDark[0], brandDark[1], brandDark[2])
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(140, 8, tr(title), "B", 1, "L", true, 0, "")
		pdf.SetTextColor(51, 51, 51)
	}
	row := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(labelWidth, rowHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(95, rowHeight, tr(value), "", "L", false)
	}

	section("Información del Cliente")
	row("Nombre:", user.Name)
	row("Email:", user.Email)
	row("Teléfono:", orNotSpecified(ptr.Value(user.Phone)))

	section("Detalles del Servicio")
	row("Fecha y hora:", res.BookingDate.In(g.location).Format(dateTimeLayout))
	row("Estado:", statusLabel(res.Status))
	row("Pasajeros:", strconv.Itoa(passengers.NumberOfPassengers))
	row("Tipo de vehículo:", domain.VehicleTypeLabel(passengers.Vehicle56Seats, passengers.Vehicle7Seats))
	row("Extras:", domain.ExtrasLabel(passengers.ChildSeat))
	if res.IsCancelled() {
		row("Motivo de cancelación:", orNotSpecified(ptr.Value(res.CancellationReason)))
		if res.CancelledAt != nil {
			row("Cancelada el:", res.CancelledAt.In(g.location).Format(dateTimeLayout))
		}
	}

	section("Trayecto")
	row("Recogida:", formatAddress(&pickup))
	row("Destino:", formatAddress(destPtr))

	if instructions := ptr.Value(res.SpecialInstructions); instructions != "" {
		section("Observaciones")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(140, rowHeight, tr(instructions), "", "L", false)
	}

	// Подвал
	pdf.Ln(10)
	pdf.SetDrawColor(brandTeal[0], brandTeal[1], brandTeal[2])
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(3)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Arial", "", 8)
	footer := []string{
		"Documento generado el " + res.CreatedAt.In(g.location).Format(dateTimeLayout),
		g.appName + " - Servicio de transporte premium",
		"Para modificaciones o cancelaciones, acceda a su cuenta en nuestra plataforma",
	}
	for _, line := range footer {
		pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// qrPayload содержимое QR кода: сервис, номер бронирования и время подачи
func qrPayload(appName string, res *domain.Reservation) string {
	return fmt.Sprintf("%s|%s|%s", appName, res.ProviderBookingID, res.BookingDate.UTC().Format(time.RFC3339))
}

func orNotSpecified(s string) string {
	if s == "" {
		return domain.NotSpecifiedLabel
	}
	return s
}
