package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alejandrodnm/simmerbot/config"
	"github.com/alejandrodnm/simmerbot/internal/adapters/notify"
	"github.com/alejandrodnm/simmerbot/internal/adapters/status"
	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
)

// buildNotifiers arma la cadena de salida: consola siempre, Telegram si hay
// credenciales y el servidor de estado en modo poll si status.addr está definido.
func buildNotifiers(ctx context.Context, cfg *config.Config, console *notify.Console) ports.Notifier {
	chain := notify.Multi{console}

	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			slog.Warn("telegram disabled", "err", err)
		} else {
			chain = append(chain, tg)
		}
	}

	if cfg.Mode == domain.ModePoll && cfg.Status.Addr != "" {
		gin.SetMode(gin.ReleaseMode)
		srv := status.New(cfg.Status.Addr, time.Now())
		go func() {
			if err := srv.Start(ctx); err != nil {
				slog.Error("status server failed", "err", err)
			}
		}()
		chain = append(chain, srv)
	}

	if len(chain) == 1 {
		return console
	}
	return chain
}
