package sync_calendar

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/service/calendarsync"
)

type SyncService interface {
	Sync(ctx context.Context, req calendarsync.Request, direction calendarsync.Direction) (*calendarsync.SyncResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
