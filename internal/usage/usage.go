// Package usage turns a statusline payload into a token total and a context
// window utilization percent.
package usage

import (
	"fmt"
	"math"

	"github.com/Seraphli/ctxbar/internal/cache"
	"github.com/Seraphli/ctxbar/internal/logger"
	"github.com/Seraphli/ctxbar/internal/payload"
)

// Source says where a Resolution came from.
type Source int

const (
	SourceCache Source = iota
	SourceReported
	SourceBreakdown
)

func (s Source) String() string {
	switch s {
	case SourceReported:
		return "reported"
	case SourceBreakdown:
		return "breakdown"
	default:
		return "cache"
	}
}

// Resolution is the outcome of Resolve. Percent is only meaningful when
// HasPercent is set.
type Resolution struct {
	Total      int
	Percent    int
	HasPercent bool
	Source     Source
}

// Resolver resolves usage, falling back to Store when the payload has none.
type Resolver struct {
	Store cache.Store
}

// Resolve never fails: cache errors are logged and otherwise ignored, and
// the worst case is a zero total.
func (r *Resolver) Resolve(s payload.Snapshot) Resolution {
	switch {
	case s.ReportedPercent != nil:
		p := *s.ReportedPercent
		if p < 0 {
			p = 0
		}
		res := Resolution{
			Total:      int(math.Floor(p * float64(s.Capacity) / 100)),
			Percent:    int(math.Floor(p)),
			HasPercent: true,
			Source:     SourceReported,
		}
		r.save(s.SessionID, res.Total)
		return res
	case s.Usage != nil:
		// Output tokens are not counted against the window.
		total := s.Usage.InputTokens + s.Usage.CacheCreationTokens + s.Usage.CacheReadTokens
		r.save(s.SessionID, total)
		return Resolution{Total: total, Source: SourceBreakdown}
	default:
		return Resolution{Total: r.load(s.SessionID), Source: SourceCache}
	}
}

func (r *Resolver) save(key string, total int) {
	if r.Store == nil {
		return
	}
	if err := r.Store.Save(key, total); err != nil {
		logger.Debug(fmt.Sprintf("cache save for session %s: %v", key, err))
	}
}

func (r *Resolver) load(key string) int {
	if r.Store == nil {
		return 0
	}
	n, ok := r.Store.Load(key)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// Percent returns the final integer utilization. It is not capped at 100.
func Percent(res Resolution, capacity int) int {
	if res.HasPercent {
		return res.Percent
	}
	if capacity <= 0 {
		capacity = payload.DefaultCapacity
	}
	return int(int64(res.Total) * 100 / int64(capacity))
}

// NoData reports whether there is nothing worth drawing.
func NoData(total, percent int) bool {
	return total == 0 && percent == 0
}
