package scanner

import (
	"context"
	"log/slog"
	"time"
)

// minSleep es la espera mínima entre iteraciones, aunque el run supere el intervalo.
const minSleep = time.Second

// Run ejecuta el poll driver hasta que el contexto se cancele (SIGINT/SIGTERM).
// Cada iteración corre el pipeline una vez; un fallo se reporta al notifier y
// nunca corta el loop. Después de cada iteración espera
// max(1s, ScanInterval - duración de la iteración).
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"mode", s.cfg.Mode,
		"interval", s.cfg.ScanInterval,
		"query", s.cfg.Query,
	)

	for iteration := 1; ; iteration++ {
		if ctx.Err() != nil {
			slog.Info("scanner stopped", "iterations", iteration-1)
			return nil
		}

		started := s.now()
		s.runCycle(ctx, iteration)

		wait := max(minSleep, s.cfg.ScanInterval-s.now().Sub(started))
		if err := s.sleep(ctx, wait); err != nil {
			slog.Info("scanner stopped", "iterations", iteration)
			return nil
		}
	}
}

// runCycle ejecuta una iteración y publica el reporte o el error.
func (s *Scanner) runCycle(ctx context.Context, iteration int) {
	start := s.now()

	report, err := s.RunOnce(ctx)
	if err != nil {
		slog.Error("scan cycle failed", "iteration", iteration, "err", err)
		if s.notifier != nil {
			if nerr := s.notifier.NotifyError(ctx, s.now().UTC(), err); nerr != nil {
				slog.Warn("notifier error", "err", nerr)
			}
		}
		return
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("scan cycle complete",
		"iteration", iteration,
		"decision", report.Decision,
		"candidates", len(report.Candidates),
		"duration", s.now().Sub(start).Round(time.Millisecond),
	)
}

// sleepContext espera d respetando la cancelación del contexto.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
