package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/autoplan/internal/presentation/tui"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ReadInput returns the contents of path, or stdin when path is empty or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMarkdown writes markdown to w, rendered for the terminal when w is one.
func WriteMarkdown(w io.Writer, markdown string) error {
	if IsTerminal(w) {
		if out, err := tui.NewRenderer()(markdown); err == nil {
			markdown = out
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintSystemMessage prints a standardized system message to stderr.
func PrintSystemMessage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, ">>> %s\n", fmt.Sprintf(format, args...))
}
