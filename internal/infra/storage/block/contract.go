package block

import "github.com/m04kA/SMC-TurfManager/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (БД или транзакция)
type DBExecutor = dbmetrics.DBExecutor
