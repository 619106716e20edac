package salon

import (
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения SQL запросов
type DBExecutor = dbmetrics.DBExecutor
