package telegram

import (
	"fmt"
	"strings"
	"time"

	"insider-conviction/internal/conviction"
	"insider-conviction/pkg/utils"
)

const maxMessageLength = 4090

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatConvictionAlerts formats scored purchases into Markdown messages for Telegram,
// splitting into parts so none exceeds the message limit.
func FormatConvictionAlerts(results []conviction.Result) []string {
	if len(results) == 0 {
		return []string{"No new conviction alerts this cycle."}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString("🚨 *Insider Conviction Alerts* 🚨\n\n")
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*Insider Conviction Alerts Part %d*---\n\n", part))
		}
	}

	startNewPart()

	for _, r := range results {
		entry := formatConvictionEntry(r)
		if currentMessage.Len()+len(entry) > maxMessageLength {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func formatConvictionEntry(r conviction.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s *%s* %s\n", categoryIcon(r.Category), r.Ticker, r.Category))
	b.WriteString(fmt.Sprintf("👤 %s", markdownEscaper.Replace(r.Insider)))
	if r.CoordinatedInsiders > 1 {
		b.WriteString(fmt.Sprintf(" (+%d insiders)", r.CoordinatedInsiders-1))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("💰 %s shares @ $%s on %s\n",
		formatShares(r.Transaction.GroupedShares), r.Transaction.Price().StringFixed(2), r.TransactionDate.Format(time.DateOnly)))
	b.WriteString(fmt.Sprintf("🎯 *Score:* %.2f (base %.2f x%.2f)\n", r.AdjustedScore, r.BaseScore, r.ConfidenceMultiplier))
	b.WriteString(fmt.Sprintf("%s *Timing:* %s", timingIcon(r.TimingCategory), r.TimingCategory))
	if r.TimingCategory != conviction.TimingUnknown {
		b.WriteString(fmt.Sprintf(" (%+.1f%% since, %dd ago)", r.PriceChangePct, r.DaysSinceTransaction))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("📌 %s\n\n", r.RecommendedAction))
	return b.String()
}

func categoryIcon(band conviction.Band) string {
	switch band {
	case conviction.BandStrongBuy:
		return "🟢🟢"
	case conviction.BandBuy:
		return "🟢"
	case conviction.BandAccumulate, conviction.BandWatch:
		return "🟡"
	default:
		return "⚪"
	}
}

func timingIcon(timing conviction.TimingCategory) string {
	switch timing {
	case conviction.TimingEarly:
		return "⏱️"
	case conviction.TimingStale:
		return "🕸️"
	default:
		return "⏳"
	}
}

func formatShares(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return s
	}
	var out strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}

// FormatErrorAlertMessage formats a failed scoring cycle for Telegram.
func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}
