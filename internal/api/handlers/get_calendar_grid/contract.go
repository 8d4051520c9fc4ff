package get_calendar_grid

import (
	"context"

	composeGrid "github.com/m04kA/SMC-MeetupService/internal/usecase/compose_grid"
)

type ComposeGridUseCase interface {
	Execute(ctx context.Context, req *composeGrid.Request) (*composeGrid.Grid, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
