package reservation

import "github.com/m04kA/TaxiClass-ReservationService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
