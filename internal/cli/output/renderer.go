// Package output renders search reports in the configured format.
//
// Modes:
//   - yaml:  label -> path list mapping, the tool's classic output
//   - json:  same structure as JSON
//   - table: styled table for humans
//   - auto:  table on a TTY, yaml otherwise
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/tagger/internal/resolver"
)

// Mode is the requested output format.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeYAML  Mode = "yaml"
	ModeJSON  Mode = "json"
	ModeTable Mode = "table"
)

// Valid reports whether the mode is a known format name.
func (m Mode) Valid() bool {
	switch m {
	case ModeAuto, ModeYAML, ModeJSON, ModeTable, "":
		return true
	default:
		return false
	}
}

// Renderer writes reports to the configured writer.
type Renderer struct {
	out  io.Writer
	mode Mode
}

// NewRenderer creates a renderer. An empty mode means auto.
func NewRenderer(out io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, mode: mode}
}

// EffectiveMode resolves auto to a concrete format: table when stdout is a
// terminal, yaml when piped.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeTable
	}
	return ModeYAML
}

// Report renders a search report in the effective mode.
func (r *Renderer) Report(report resolver.Report) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.reportJSON(report)
	case ModeTable:
		return r.reportTable(report)
	default:
		return r.reportYAML(report)
	}
}

// reportYAML emits the label -> sorted paths mapping. yaml.v3 orders map
// keys, so output is reproducible.
func (r *Renderer) reportYAML(report resolver.Report) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) reportJSON(report resolver.Report) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Structured renders arbitrary serializable data as YAML, or JSON when the
// effective mode asks for it. Table callers handle their own layout.
func (r *Renderer) Structured(v any) error {
	if r.EffectiveMode() == ModeJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}
