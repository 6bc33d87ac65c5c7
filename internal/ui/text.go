package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter styles one kind of ejgo output, such as a path or a public key.
// With colors disabled it falls back to plain-text delimiters so the meaning
// survives in logs and CI output.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint styles fmt.Sprint(a...).
func (f Formatter) Sprint(a ...any) string {
	return f.apply(fmt.Sprint(a...))
}

// Sprintf styles fmt.Sprintf(format, a...).
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.apply(fmt.Sprintf(format, a...))
}

func (f Formatter) apply(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline terminates spinner final messages, which are built without
// a trailing newline.
func EnsureNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

// noColor is true when NO_COLOR is set or fatih/color has already decided
// the output is not a color terminal, as when stdout is piped into a file.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Formatters used across the ejgo commands.
var (
	// Code marks commands to run next, such as `ejgo keygen`.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path marks secrets files, key files and the config file.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag marks flags named in hints, such as --key-from-stdin.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Key marks hex public keys, which name the private key files.
	Key = Formatter{color.New(color.FgMagenta), "'", "'"}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info colors the hint arrow.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight marks member names such as _public_key.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted marks where a setting came from in config show.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Marks that lead a line of command output.
const (
	SuccessMark = "✓"
	ErrorMark   = "✗"
	WarningMark = "⚠"
	HintMark    = "→"
)

// Succeeded renders a success line.
func Succeeded(msg string) string {
	return Success.Sprint(SuccessMark) + " " + msg
}

// Failed renders a failure line followed by the underlying error, if any.
func Failed(msg string, err error) string {
	line := Error.Sprint(ErrorMark) + " " + msg
	if err != nil {
		line += "\n" + Error.Sprint("Error: ") + err.Error()
	}
	return line
}

// Hint renders a follow-up suggestion line.
func Hint(msg string) string {
	return Info.Sprint(HintMark) + " " + msg
}
