// Package output renders bizlens snapshots and derived reports for the
// terminal.
//
// This package includes:
//   - Table renderers for the dashboard, analytics, predictions and history views
//   - A spinner for the simulated analysis delay
//   - A notification sink that prints toasts
//
// Renderers return strings and never write directly. Colour is applied
// only when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/notify"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Missing marks a gap in a series row.
const Missing = "-"

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if color == "" || !IsColorEnabled() {
		return text
	}
	return color + text + colorReset
}

// pad left-aligns text in width columns and colours it afterwards so that
// escape codes do not count towards the width.
func pad(color, text string, width int) string {
	return colorize(color, fmt.Sprintf("%-*s", width, text))
}

func levelColor(l classify.Level) string {
	switch l {
	case classify.High:
		return colorRed
	case classify.Medium:
		return colorYellow
	default:
		return colorGreen
	}
}

func bandColor(b classify.EfficiencyBand) string {
	switch b {
	case classify.Good:
		return colorGreen
	case classify.Fair:
		return colorYellow
	default:
		return colorRed
	}
}

func urgencyColor(u classify.UrgencyLevel) string {
	switch u {
	case classify.Critical:
		return colorRed
	case classify.Warning:
		return colorYellow
	default:
		return colorGreen
	}
}

func stockColor(s classify.StockStatus) string {
	switch s {
	case classify.StockoutRisk:
		return colorRed
	case classify.Overstock:
		return colorYellow
	default:
		return colorGreen
	}
}

func severityColor(s notify.Severity) string {
	switch s {
	case notify.Success:
		return colorGreen
	case notify.Warning:
		return colorYellow
	case notify.Error:
		return colorRed
	default:
		return colorBlue
	}
}

// iconGlyphs is indexed by dataset.Icon.
var iconGlyphs = [...]string{
	dataset.IconNone:          " ",
	dataset.IconDollarSign:    "$",
	dataset.IconUsers:         "☺",
	dataset.IconAlertTriangle: "⚠",
	dataset.IconTrendingUp:    "↗",
	dataset.IconLineChart:     "∿",
	dataset.IconBarChart:      "▥",
	dataset.IconPackage:       "▣",
	dataset.IconGlobe:         "◍",
}

// Glyph returns the terminal glyph for an icon. Unknown icons render blank.
func Glyph(icon dataset.Icon) string {
	if icon < 0 || int(icon) >= len(iconGlyphs) {
		return iconGlyphs[dataset.IconNone]
	}
	return iconGlyphs[icon]
}

// formatMoney renders whole dollars with thousands separators.
func formatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	v = math.Round(v)
	if v < 0 {
		return "-$" + humanize.Commaf(-v)
	}
	return "$" + humanize.Commaf(v)
}

// formatChange renders a signed percentage with a direction arrow.
func formatChange(pct float64) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("↑ %+.1f%%", pct)
	case pct < 0:
		return fmt.Sprintf("↓ %+.1f%%", pct)
	default:
		return "→ 0.0%"
	}
}

func changeColor(pct float64) string {
	if pct < 0 {
		return colorRed
	}
	return colorGreen
}

// bar draws pct (0-100) as a fixed-width gauge, e.g. [======>   ].
func bar(pct float64, width int) string {
	if math.IsNaN(pct) {
		pct = 0
	}
	pct = math.Min(math.Max(pct, 0), 100)
	filled := int(math.Round(pct / 100 * float64(width)))

	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < width; i++ {
		switch {
		case i < filled-1:
			sb.WriteString("=")
		case i == filled-1:
			sb.WriteString(">")
		default:
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// heading renders a section title with an underline rule.
func heading(title string, width int) string {
	return colorize(colorBold, title) + "\n" + strings.Repeat("─", width) + "\n"
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
