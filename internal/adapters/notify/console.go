package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// questionWidth es el ancho máximo de la pregunta en la tabla.
const questionWidth = 60

// Console implementa ports.Notifier sobre stdout/stderr.
// Por defecto escribe un documento JSON por reporte; con table=true imprime
// una tabla legible en su lugar.
type Console struct {
	out     io.Writer
	errOut  io.Writer
	compact bool
	table   bool
}

// NewConsole crea un notificador que escribe a stdout (reportes) y stderr (errores).
// compact=true emite una línea JSON por reporte (modo poll).
func NewConsole(compact, table bool) *Console {
	return &Console{out: os.Stdout, errOut: os.Stderr, compact: compact, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(out, errOut io.Writer, compact, table bool) *Console {
	return &Console{out: out, errOut: errOut, compact: compact, table: table}
}

// Notify imprime el reporte en el formato configurado.
func (c *Console) Notify(_ context.Context, report domain.Report) error {
	if c.table {
		return c.printTable(report)
	}
	return c.writeJSON(c.out, report)
}

// errorRecord es lo que el poll driver deja en stderr cuando una iteración falla.
type errorRecord struct {
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error"`
}

// NotifyError escribe el registro de error de una iteración en stderr.
func (c *Console) NotifyError(_ context.Context, checkedAt time.Time, runErr error) error {
	b, err := json.Marshal(errorRecord{CheckedAt: checkedAt, Error: runErr.Error()})
	if err != nil {
		return fmt.Errorf("notify.Console.NotifyError: %w", err)
	}
	_, err = fmt.Fprintln(c.errOut, string(b))
	return err
}

// PrintBriefing imprime el documento de briefing tal cual lo devuelve la API.
func (c *Console) PrintBriefing(b domain.Briefing) error {
	return c.writeJSON(c.out, b)
}

func (c *Console) writeJSON(w io.Writer, v any) error {
	var (
		b   []byte
		err error
	)
	if c.compact {
		b, err = json.Marshal(v)
	} else {
		b, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("notify.Console: marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printTable imprime cabecera, candidatos y la decisión.
func (c *Console) printTable(r domain.Report) error {
	fmt.Fprintf(c.out, "\n[%s] %s  agent=%s balance=%.2f  decision=%s\n",
		r.CheckedAt.Format("15:04:05"), r.Mode, r.Agent.Name, r.Agent.Balance, r.Decision)

	rows := r.Candidates
	if r.Pick != nil {
		rows = []domain.CandidateSummary{*r.Pick}
	}

	if len(rows) > 0 {
		table := tablewriter.NewWriter(c.out)
		table.Header("#", "Market", "Prob", "Opp", "Vol 24h", "Rank", "Resolves")
		for i, cand := range rows {
			if err := table.Append(
				strconv.Itoa(i+1),
				domain.TruncateQuestion(cand.Question, cand.ID, questionWidth),
				optionalFloat(cand.CurrentProbability, "%.3f"),
				fmt.Sprintf("%.1f", cand.OpportunityScore),
				optionalFloat(cand.Volume24h, "%.0f"),
				fmt.Sprintf("%.2f", cand.RankScore),
				cand.ResolvesAt,
			); err != nil {
				return fmt.Errorf("notify.Console.printTable: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("notify.Console.printTable: %w", err)
		}
	}

	for _, ctx := range r.Contexts {
		fmt.Fprintf(c.out, "  context %s: warnings=%d\n", ctx.ID, len(ctx.Warnings))
	}
	if r.Gate != nil {
		reason := "none"
		if r.Gate.BlockReason != nil {
			reason = *r.Gate.BlockReason
		}
		fmt.Fprintf(c.out, "  gate: spread=%s max=%.4f block=%s warnings=%s\n",
			optionalFloat(r.Gate.SpreadPct, "%.4f"), r.Gate.MaxSpreadPct, reason, r.Gate.WarningSummary)
	}
	if r.Action != nil {
		fmt.Fprintf(c.out, "  action: %s (max $%.2f)\n", r.Action.Guidance, r.Action.MaxUSD)
	}
	if r.Trade != nil {
		fmt.Fprintf(c.out, "  trade: id=%s success=%t shares=%.4f cost=$%.2f\n",
			r.Trade.TradeID, r.Trade.Success, r.Trade.SharesBought, r.Trade.Cost)
	}
	fmt.Fprintf(c.out, "  %s\n", r.Note)
	return nil
}

func optionalFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
