// Package output renders command results to the terminal, either as
// human-readable text or as JSON for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// Printer writes command results. JSON mode is set once from the
// global flag and applies to every command.
type Printer struct {
	out  io.Writer
	err  io.Writer
	json bool
}

// New creates a Printer for stdout/stderr.
func New(jsonMode bool) *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr, json: jsonMode}
}

// NewWithWriters creates a Printer with explicit writers, for tests.
func NewWithWriters(out, err io.Writer, jsonMode bool) *Printer {
	return &Printer{out: out, err: err, json: jsonMode}
}

// JSON reports whether the printer is in JSON mode.
func (p *Printer) JSON() bool { return p.json }

// Success prints a human-readable confirmation line. In JSON mode it
// emits {"success": true, "message": ...}.
func (p *Printer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		p.writeJSON(map[string]any{"success": true, "message": msg})
		return
	}
	fmt.Fprintln(p.out, msg)
}

// Result prints a structured payload: indented JSON in JSON mode,
// otherwise the fallback renderer.
func (p *Printer) Result(payload any, text func(w io.Writer)) {
	if p.json {
		p.writeJSON(payload)
		return
	}
	if text != nil {
		text(p.out)
	}
}

// Raw writes preformatted output (Markdown, plain text) unchanged.
func (p *Printer) Raw(s string) {
	fmt.Fprintln(p.out, s)
}

// Error reports a failure. The optional tip tells the user what to do
// next, such as which command re-establishes credentials.
func (p *Printer) Error(code, message, tip string) {
	if p.json {
		payload := map[string]any{
			"success": false,
			"error":   map[string]string{"code": code, "message": message},
		}
		if tip != "" {
			payload["error"].(map[string]string)["tip"] = tip
		}
		p.writeJSONTo(p.err, payload)
		return
	}
	fmt.Fprintf(p.err, "Error: %s\n", message)
	if tip != "" {
		fmt.Fprintf(p.err, "Tip: %s\n", tip)
	}
}

// Table renders rows as aligned columns. In JSON mode callers use
// Result instead; Table is text-only.
func (p *Printer) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(w, joinTab(headers))
	}
	for _, row := range rows {
		fmt.Fprintln(w, joinTab(row))
	}
	w.Flush()
}

func joinTab(fields []string) string {
	line := ""
	for i, f := range fields {
		if i > 0 {
			line += "\t"
		}
		line += f
	}
	return line
}

func (p *Printer) writeJSON(payload any) {
	p.writeJSONTo(p.out, payload)
}

func (p *Printer) writeJSONTo(w io.Writer, payload any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		fmt.Fprintf(p.err, "Error: failed to encode JSON output: %v\n", err)
	}
}
