package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// Sender is the subset of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends alerts for executed trades, picks ready for review,
// the first failed poll iteration and the recovery after it.
type Telegram struct {
	bot    Sender
	chatID int64

	mu      sync.Mutex
	failing bool
}

// NewTelegram connects to the Bot API. chatID is the numeric chat id as text.
func NewTelegram(token, chatID string) (*Telegram, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("notify.NewTelegram: invalid chat id: %w", err)
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify.NewTelegram: %w", err)
	}
	return NewTelegramWithSender(bot, id), nil
}

// NewTelegramWithSender builds the notifier on an existing sender (tests).
func NewTelegramWithSender(bot Sender, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

// Notify sends a message for TRADED, TRADE_REJECTED and REVIEW decisions.
// Other decisions are silent, except for the recovery notice after a failure.
func (t *Telegram) Notify(_ context.Context, report domain.Report) error {
	t.mu.Lock()
	recovered := t.failing
	t.failing = false
	t.mu.Unlock()

	if recovered {
		if err := t.send(formatRecovery(report.CheckedAt)); err != nil {
			return err
		}
	}

	msg, ok := formatReport(report)
	if !ok {
		return nil
	}
	return t.send(msg)
}

// NotifyError alerts only on the first failure of a streak.
func (t *Telegram) NotifyError(_ context.Context, checkedAt time.Time, runErr error) error {
	t.mu.Lock()
	first := !t.failing
	t.failing = true
	t.mu.Unlock()

	if !first {
		slog.Debug("telegram: failure already reported", "err", runErr)
		return nil
	}
	return t.send(formatFailure(checkedAt, runErr))
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("notify.Telegram.send: %w", err)
	}
	return nil
}

// formatReport devuelve el mensaje de un reporte y si merece ser enviado.
func formatReport(r domain.Report) (string, bool) {
	switch r.Decision {
	case domain.DecisionTraded, domain.DecisionRejected:
		if r.Pick == nil || r.Trade == nil {
			return "", false
		}
		var sb strings.Builder
		header := "✅ *Trade executed*"
		if r.Decision == domain.DecisionRejected {
			header = "⚠️ *Trade not confirmed*"
		}
		sb.WriteString(header + "\n\n")
		sb.WriteString(marketLine(*r.Pick) + "\n")
		fmt.Fprintf(&sb, "Side: %s  Cost: %s  Shares: %s\n",
			escapeMarkdownV2(r.Trade.Side),
			escapeMarkdownV2(fmt.Sprintf("$%.2f", r.Trade.Cost)),
			escapeMarkdownV2(fmt.Sprintf("%.4f", r.Trade.SharesBought)))
		if r.Trade.Balance != nil {
			fmt.Fprintf(&sb, "Balance: %s\n", escapeMarkdownV2(fmt.Sprintf("$%.2f", *r.Trade.Balance)))
		}
		if r.Trade.Error != "" {
			fmt.Fprintf(&sb, "Error: %s\n", escapeMarkdownV2(r.Trade.Error))
		}
		return sb.String(), true

	case domain.DecisionReview:
		if r.Pick == nil {
			return "", false
		}
		var sb strings.Builder
		sb.WriteString("👀 *Pick ready for review*\n\n")
		sb.WriteString(marketLine(*r.Pick) + "\n")
		if r.Gate != nil {
			fmt.Fprintf(&sb, "Warnings: %s\n", escapeMarkdownV2(r.Gate.WarningSummary))
		}
		if r.Action != nil {
			fmt.Fprintf(&sb, "Max size: %s\n", escapeMarkdownV2(fmt.Sprintf("$%.2f", r.Action.MaxUSD)))
		}
		return sb.String(), true
	}
	return "", false
}

func formatFailure(checkedAt time.Time, err error) string {
	return fmt.Sprintf("🚨 *Scan failing*\n\n%s\n%s",
		escapeMarkdownV2(checkedAt.UTC().Format("2006-01-02 15:04:05")),
		escapeMarkdownV2(err.Error()))
}

func formatRecovery(checkedAt time.Time) string {
	return fmt.Sprintf("🟢 *Scan recovered*\n\n%s",
		escapeMarkdownV2(checkedAt.UTC().Format("2006-01-02 15:04:05")))
}

func marketLine(c domain.CandidateSummary) string {
	title := escapeMarkdownV2(domain.TruncateQuestion(c.Question, c.ID, 80))
	line := title
	if c.URL != "" {
		line = fmt.Sprintf("[%s](%s)", title, c.URL)
	}
	prob := "\\-"
	if c.CurrentProbability != nil {
		prob = escapeMarkdownV2(fmt.Sprintf("%.1f%%", *c.CurrentProbability*100))
	}
	return fmt.Sprintf("%s\nProb: %s  Score: %s", line, prob,
		escapeMarkdownV2(fmt.Sprintf("%.1f", c.OpportunityScore)))
}

// escapeMarkdownV2 escapa los caracteres reservados de MarkdownV2.
func escapeMarkdownV2(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
