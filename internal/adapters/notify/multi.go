package notify

import (
	"context"
	"errors"
	"time"

	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
)

// Multi reparte cada reporte entre varios notifiers, en orden.
// Un notifier que falla no impide que los siguientes reciban el reporte.
type Multi []ports.Notifier

func (m Multi) Notify(ctx context.Context, report domain.Report) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyError(ctx context.Context, checkedAt time.Time, runErr error) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyError(ctx, checkedAt, runErr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
