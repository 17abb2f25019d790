package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/mailer"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

// buildEmailData данные для писем пользователю и администрации.
// Дата и время письма берутся в смещении, отправленном провайдеру
func buildEmailData(req *Request, user *domain.User, payload *auriga.BookingPayload, pickupTime time.Time, result *auriga.CreateResponse) *mailer.ReservationEmail {
	return &mailer.ReservationEmail{
		BookingID:           result.BookingID,
		ServiceID:           result.ServiceID,
		ProviderName:        result.ProviderName,
		Date:                pickupTime.Format("02/01/2006"),
		Time:                pickupTime.Format("15:04"),
		PickupAddress:       placeLabel(req.Pickup),
		DestinationAddress:  placeLabel(req.Destination),
		Passengers:          req.NumberOfPassengers,
		VehicleType:         domain.VehicleTypeLabel(req.Vehicle56Seats, req.Vehicle7Seats),
		Extras:              domain.ExtrasLabel(req.ChildSeat),
		SpecialInstructions: payload.Special,
		UserName:            user.Name,
		UserEmail:           user.Email,
		UserPhone:           ptr.Value(user.Phone),
		Account:             ptr.Value(user.Account),
	}
}

func placeLabel(place *domain.Place) string {
	if place == nil {
		return domain.NotSpecifiedLabel
	}
	return domain.PlaceLabel(place.Type.Normalize(), place.Address, place.FlightNumber, place.FlightOrigin, place.Terminal)
}

// notify отправляет письма вне запроса; ошибки только логируются
func (uc *UseCase) notify(ctx context.Context, user *domain.User, data *mailer.ReservationEmail) {
	base := context.WithoutCancel(ctx)

	uc.runner.Go(func() {
		sendCtx, cancel := context.WithTimeout(base, uc.cfg.NotificationTimeout)
		defer cancel()

		if err := uc.notifier.SendReservationConfirmation(sendCtx, user.Email, user.Name, data); err != nil {
			uc.logger.Error("CreateReservation: failed to send confirmation booking_id=%s user=%d: %v",
				data.BookingID, user.ID, err)
		}

		if uc.cfg.AdminEmail == "" {
			uc.logger.Warn("CreateReservation: admin email not configured, skipping notification booking_id=%s", data.BookingID)
			return
		}
		if err := uc.notifier.SendReservationNotificationToAdmin(sendCtx, uc.cfg.AdminEmail, data); err != nil {
			uc.logger.Error("CreateReservation: failed to notify admin booking_id=%s: %v", data.BookingID, err)
		}
	})
}
