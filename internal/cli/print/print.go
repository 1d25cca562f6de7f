// Package print renders API records as tables, JSON or YAML.
package print

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Printer writes records in one output format
type Printer struct {
	out    io.Writer
	format string
}

// New creates a printer for format ("table", "json" or "yaml")
func New(out io.Writer, format string) *Printer {
	return &Printer{out: out, format: format}
}

// Structured reports whether output is machine-readable
func (p *Printer) Structured() bool {
	return p.format == "json" || p.format == "yaml"
}

// Out returns the underlying writer
func (p *Printer) Out() io.Writer {
	return p.out
}

// NewTabWriter returns a tabwriter over the printer's output
func (p *Printer) NewTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

// emit renders v in the structured formats and calls table otherwise
func (p *Printer) emit(v any, table func() error) error {
	switch p.format {
	case "json":
		return p.printJSON(v)
	case "yaml":
		return p.printYAML(v)
	case "table", "":
		return table()
	default:
		return fmt.Errorf("unsupported output format: %s (supported: table, json, yaml)", p.format)
	}
}

func (p *Printer) printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(output))
	return err
}

// printYAML goes through the JSON encoding so field names and order match
// the json output
func (p *Printer) printYAML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	_, err = p.out.Write(buf.Bytes())
	return err
}

// clearStyle drops the flow and quoting styles inherited from JSON
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// Success reports a completed action
func (p *Printer) Success(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return p.emit(map[string]string{"status": "ok", "message": msg}, func() error {
		_, err := fmt.Fprintf(p.out, "%s %s\n", color.GreenString("✓"), msg)
		return err
	})
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Status colors an appointment status: confirmed green, pending yellow,
// anything else red
func Status(status string) string {
	switch status {
	case "confirmed":
		return green(status)
	case "pending":
		return yellow(status)
	default:
		return red(status)
	}
}
