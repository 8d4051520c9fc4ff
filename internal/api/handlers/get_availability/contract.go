package get_availability

import (
	"context"

	aggregateAvailability "github.com/m04kA/SMC-MeetupService/internal/usecase/aggregate_availability"
)

type AggregateAvailabilityUseCase interface {
	Execute(ctx context.Context, req *aggregateAvailability.Request) (*aggregateAvailability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
