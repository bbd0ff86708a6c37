package log

import "github.com/fatih/color"

// Color returns the fatih/color attribute set used to prefix a line at
// the given level when the logger is writing to a terminal.
func Color(l LogLevel) *color.Color {
	switch l {
	case Debug:
		return color.New(color.FgBlue)
	case Info:
		return color.New(color.FgGreen)
	case Warn:
		return color.New(color.FgYellow)
	case Error:
		return color.New(color.FgRed)
	case Fatal:
		return color.New(color.FgMagenta, color.Bold)
	default:
		return color.New()
	}
}
