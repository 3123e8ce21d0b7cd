package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: table, json or yaml",
		Value:   outputTable,
		Validator: func(s string) error {
			switch s {
			case outputTable, outputJSON, outputYAML:
				return nil
			}
			return fmt.Errorf("unknown output format %q", s)
		},
	}
}

// encode writes v as JSON or YAML. ok is false for the table format, which
// each command renders itself.
func encode(w io.Writer, format string, v any) (ok bool, err error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}

// renderMarkdown renders a description for the terminal, falling back to the
// raw text when rendering fails.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
