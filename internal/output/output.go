// Package output renders command results as plain text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("154"))

// Writer prints results to out. Text is styled only on an interactive
// terminal with NO_COLOR unset; JSON is never styled.
type Writer struct {
	out    io.Writer
	styled bool
}

// New creates a Writer, detecting whether out is a terminal.
func New(out io.Writer) *Writer {
	return &Writer{out: out, styled: isTerminal(out) && !noColor()}
}

// Summary prints one status line.
func (w *Writer) Summary(line string) error {
	if w.styled {
		line = summaryStyle.Render(line)
	}
	_, err := fmt.Fprintln(w.out, line)
	return err
}

// JSON encodes v followed by a newline. With indent set, nested values are
// indented by two spaces. HTML characters are left unescaped so source text
// survives verbatim.
func (w *Writer) JSON(v any, indent bool) error {
	enc := json.NewEncoder(w.out)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func noColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
