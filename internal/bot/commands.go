// internal/bot/commands.go
package bot

import (
	"context"
	"creator-yield/internal/yield"
	"fmt"
	"strings"

	val "creator-yield/internal/validator"
)

const helpText = "📈 *Creator yield*\n\n" +
	"Команды:\n" +
	"`/yield creator8` — диапазон, последний доход и 12 месяцев\n" +
	"`/band creator8` — только диапазон\n" +
	"`/investors creator8` — активные инвесторы"

type InvestorCounter interface {
	Count(ctx context.Context, creatorID string) (int64, error)
}

// Responder turns chat commands into Markdown replies.
type Responder struct {
	investors InvestorCounter
}

func NewResponder(investors InvestorCounter) *Responder {
	return &Responder{investors: investors}
}

// Reply handles one incoming message. Errors are rendered into the reply.
func (r *Responder) Reply(ctx context.Context, raw string) string {
	text := SanitizeInput(FixEncoding(raw))
	cmd, arg, _ := strings.Cut(text, " ")
	// "/yield@MyBot creator8" в группах
	cmd, _, _ = strings.Cut(cmd, "@")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/start", "/help":
		return helpText
	case "/yield":
		return withCreator(arg, cmd, renderSnapshot)
	case "/band":
		return withCreator(arg, cmd, func(id string) string {
			b := yield.BandFor(id)
			return fmt.Sprintf("📊 *%s*: %.2f%% – %.2f%%", id, b.Min, b.Max)
		})
	case "/investors":
		return withCreator(arg, cmd, func(id string) string {
			n, err := r.investors.Count(ctx, id)
			if err != nil {
				return "❌ Ошибка: " + err.Error()
			}
			return fmt.Sprintf("👥 *%s*: %d активных инвесторов", id, n)
		})
	default:
		return "Неизвестная команда. Напиши /help"
	}
}

func withCreator(arg, cmd string, render func(string) string) string {
	if !val.ValidCreatorID(arg) {
		return fmt.Sprintf("❌ Используй: %s <creator>", cmd)
	}
	return render(arg)
}

func renderSnapshot(id string) string {
	snap := yield.SnapshotFor(id, 0)
	lines := []string{
		fmt.Sprintf("📈 *%s*", id),
		fmt.Sprintf("Диапазон: %.2f%% – %.2f%%", snap.Band.Min, snap.Band.Max),
		fmt.Sprintf("Последний доход: *%.2f%%*", snap.LastYield),
		"",
	}
	for _, p := range snap.Series {
		lines = append(lines, fmt.Sprintf("- %s: %.2f%%", p.Label, p.Value))
	}
	return strings.Join(lines, "\n")
}
