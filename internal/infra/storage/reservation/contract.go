package reservation

import "github.com/mastercuts/BookingService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: подходит и *sql.DB, и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
