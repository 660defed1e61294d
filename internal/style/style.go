package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
)

var (
	// ColorPurple is the color for purple
	ColorPurple = lipgloss.Color("99")
	// ColorHealthy is the color for healthy values
	ColorHealthy = lipgloss.Color("#00B894")
	// ColorDelinquent is the color for delinquent values
	ColorDelinquent = lipgloss.Color("#F4A261")
	// ColorGrey is the color for grey
	ColorGrey = lipgloss.Color("#666666")
	// ColorDebug is the color for debug
	ColorDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	// ColorInfo is the color for info
	ColorInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	// ColorWarn is the color for warn
	ColorWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("192"))
	// ColorWarning is the color for warning
	ColorWarning = lipgloss.Color("192")
	// ColorError is the style for error
	ColorError = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	// ColorFatal is the color for fatal
	ColorFatal = lipgloss.NewStyle().Foreground(lipgloss.Color("134"))
	// ColorPanic is the color for panic
	ColorPanic = ColorFatal
	// TableHeaderStyle is the style for table headers
	TableHeaderStyle = lipgloss.NewStyle().Foreground(ColorPurple).Bold(true).Align(lipgloss.Center)
	// TableCellStyle is the style for table cells
	TableCellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	// SpinnerTitleStyle is the style for spinner titles
	SpinnerTitleStyle = lipgloss.NewStyle()

	// LogLevels styles - stolen from https://github.com/charmbracelet/log/blob/main/styles.go
	LogLevels = map[string]lipgloss.Style{
		zerolog.DebugLevel.String(): ColorDebug,
		zerolog.InfoLevel.String():  ColorInfo,
		zerolog.WarnLevel.String():  ColorWarn,
		zerolog.ErrorLevel.String(): ColorError,
		zerolog.FatalLevel.String(): ColorFatal,
		zerolog.PanicLevel.String(): ColorPanic,
	}
)

// RenderTable returns a styled table of the given headers and rows
func RenderTable(headers []string, rows [][]string, styleFunc func(row, col int) lipgloss.Style) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorPurple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	if styleFunc != nil {
		t.StyleFunc(styleFunc)
	}

	return t.Render()
}

// RenderHealthyString renders a string in the healthy color
func RenderHealthyString(message string, bold bool) string {
	return lipgloss.NewStyle().
		Bold(bold).
		Foreground(ColorHealthy).
		Render(message)
}

// RenderDelinquentString renders a string in the delinquent color
func RenderDelinquentString(message string, bold bool) string {
	return lipgloss.NewStyle().
		Bold(bold).
		Foreground(ColorDelinquent).
		Render(message)
}

// RenderWarningString renders a string in the warning color
func RenderWarningString(message string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning).
		Render(message)
}

// RenderPurpleString renders a string in the purple color
func RenderPurpleString(message string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPurple).
		Render(message)
}

// RenderGreyString renders a string in the grey color
func RenderGreyString(message string, bold bool) string {
	return lipgloss.NewStyle().
		Bold(bold).
		Foreground(ColorGrey).
		Render(message)
}

// RenderHealthyStringf renders a healthy string in the healthy color
func RenderHealthyStringf(format string, a ...any) string {
	return RenderHealthyString(fmt.Sprintf(format, a...), false)
}
