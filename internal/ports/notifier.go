package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// Notifier presenta el resultado de cada run al usuario.
type Notifier interface {
	// Notify publica el reporte de un run completado.
	Notify(ctx context.Context, report domain.Report) error

	// NotifyError publica el fallo de un run (una iteración del poll driver).
	NotifyError(ctx context.Context, checkedAt time.Time, runErr error) error
}
