package calendarlink

import "github.com/m04kA/SMC-AmenityService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (БД или транзакция)
type DBExecutor = dbmetrics.DBExecutor
