package save_time_slots

import (
	"context"

	saveSelection "github.com/m04kA/SMC-MeetupService/internal/usecase/save_selection"
)

type SaveSelectionUseCase interface {
	Execute(ctx context.Context, req *saveSelection.Request) (*saveSelection.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
