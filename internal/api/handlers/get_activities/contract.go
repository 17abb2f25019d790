package get_activities

import (
	"context"

	"github.com/m04kA/TaxiClass-ReservationService/internal/service/activities/models"
)

type ActivityService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ActivityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
