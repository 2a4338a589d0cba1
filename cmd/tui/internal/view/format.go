package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const storeTimeout = 5 * time.Second

// FormatAmount renders a decimal amount with two fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCreatedAt renders an epoch-milliseconds timestamp as a local date.
func FormatCreatedAt(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02")
}

// FormatClock renders an epoch-milliseconds timestamp as a local clock time.
func FormatClock(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// StoreCtx returns a context with a standard timeout for storage operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// noteColors maps note color tags to terminal colors.
var noteColors = map[string]lipgloss.Color{
	"yellow": lipgloss.Color("220"),
	"green":  lipgloss.Color("114"),
	"blue":   lipgloss.Color("75"),
	"pink":   lipgloss.Color("212"),
	"purple": lipgloss.Color("135"),
}

// ColorTag renders a note color tag as a colored swatch.
func ColorTag(color string) string {
	c, ok := noteColors[color]
	if !ok {
		return "●"
	}

	return lipgloss.NewStyle().Foreground(c).Render("●")
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	incomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	spendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
