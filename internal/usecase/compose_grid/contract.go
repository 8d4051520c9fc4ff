package compose_grid

import (
	"context"

	aggregateAvailability "github.com/m04kA/SMC-MeetupService/internal/usecase/aggregate_availability"
)

// Aggregator интерфейс use case агрегации доступности
type Aggregator interface {
	Execute(ctx context.Context, req *aggregateAvailability.Request) (*aggregateAvailability.Result, error)
}

// Metrics интерфейс счетчиков композиции сетки
type Metrics interface {
	AddGridCells(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
