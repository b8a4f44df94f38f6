package calendartoken

import "github.com/mastercuts/BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
