// Package payload parses the session JSON that Claude Code pipes to a
// statusline command.
package payload

import (
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

const (
	DefaultModel     = "Claude"
	DefaultCapacity  = 200000
	DefaultSessionID = "default"
)

// Breakdown is the raw token usage of the current context.
type Breakdown struct {
	InputTokens         int
	CacheCreationTokens int
	CacheReadTokens     int
	OutputTokens        int
}

// Snapshot holds the usage-relevant fields of one statusline payload, with
// defaults already applied.
type Snapshot struct {
	Model     string
	Capacity  int
	Cwd       string
	SessionID string
	// ReportedPercent is nil unless used_percentage is present and numeric.
	ReportedPercent *float64
	// Usage is nil unless current_usage carries an input_tokens field.
	Usage *Breakdown
}

// Read reads the whole payload. A failed read yields whatever arrived, which
// Parse then treats like any other malformed input.
func Read(r io.Reader) []byte {
	data, _ := io.ReadAll(r)
	return data
}

// Parse extracts a Snapshot from raw JSON. Malformed input is treated as an
// empty object. fallbackCwd is used when the payload has no cwd; when it is
// empty too, the process working directory is used.
func Parse(raw []byte, fallbackCwd string) Snapshot {
	root := gjson.Result{}
	if gjson.ValidBytes(raw) {
		if r := gjson.ParseBytes(raw); r.IsObject() {
			root = r
		}
	}

	s := Snapshot{
		Model:     root.Get("model.display_name").String(),
		Cwd:       root.Get("cwd").String(),
		SessionID: root.Get("session_id").String(),
		Capacity:  DefaultCapacity,
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.SessionID == "" {
		s.SessionID = DefaultSessionID
	}
	if s.Cwd == "" {
		s.Cwd = fallbackCwd
	}
	if s.Cwd == "" {
		s.Cwd, _ = os.Getwd()
	}
	if c := number(root.Get("context_window.context_window_size")); c > 0 {
		s.Capacity = c
	}

	if p := root.Get("context_window.used_percentage"); p.Type == gjson.Number {
		v := p.Float()
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			s.ReportedPercent = &v
		}
	}

	usage := root.Get("context_window.current_usage")
	if usage.IsObject() && usage.Get("input_tokens").Exists() {
		s.Usage = &Breakdown{
			InputTokens:         number(usage.Get("input_tokens")),
			CacheCreationTokens: number(usage.Get("cache_creation_input_tokens")),
			CacheReadTokens:     number(usage.Get("cache_read_input_tokens")),
			OutputTokens:        number(usage.Get("output_tokens")),
		}
	}
	return s
}

// number returns a non-negative integer for numeric JSON values and 0 for
// anything else.
func number(r gjson.Result) int {
	if r.Type != gjson.Number {
		return 0
	}
	n := r.Int()
	if n < 0 {
		return 0
	}
	return int(n)
}

// DirName returns the final path component of cwd, or "" for a root or
// empty path.
func DirName(cwd string) string {
	if cwd == "" {
		return ""
	}
	base := filepath.Base(cwd)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
