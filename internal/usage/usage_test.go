package usage

import (
	"errors"
	"testing"

	"github.com/Seraphli/ctxbar/internal/cache"
	"github.com/Seraphli/ctxbar/internal/payload"
)

func snapshot(raw string) payload.Snapshot {
	return payload.Parse([]byte(raw), "/work/project")
}

func TestResolveBreakdownExcludesOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"all fields", `{"session_id":"s","context_window":{"current_usage":{"input_tokens":100,"cache_creation_input_tokens":20,"cache_read_input_tokens":3,"output_tokens":5000}}}`, 123},
		{"output only", `{"session_id":"s","context_window":{"current_usage":{"input_tokens":0,"output_tokens":5000}}}`, 0},
		{"input only", `{"session_id":"s","context_window":{"current_usage":{"input_tokens":42}}}`, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := cache.NewMemory()
			r := &Resolver{Store: store}
			res := r.Resolve(snapshot(tt.raw))
			if res.Total != tt.want || res.HasPercent || res.Source != SourceBreakdown {
				t.Errorf("Resolve() = %+v, want total %d from breakdown", res, tt.want)
			}
			if n, ok := store.Load("s"); !ok || n != tt.want {
				t.Errorf("cached = %d, %v, want %d", n, ok, tt.want)
			}
		})
	}
}

func TestResolveReportedPercent(t *testing.T) {
	raw := `{"session_id":"s","context_window":{"context_window_size":200000,"used_percentage":65.9,
		"current_usage":{"input_tokens":1,"cache_read_input_tokens":2}}}`
	store := cache.NewMemory()
	r := &Resolver{Store: store}
	res := r.Resolve(snapshot(raw))
	if !res.HasPercent || res.Percent != 65 || res.Source != SourceReported {
		t.Errorf("Resolve() = %+v, want reported 65%%", res)
	}
	// floor(65.9 * 200000 / 100)
	if res.Total != 131800 {
		t.Errorf("Total = %d, want 131800", res.Total)
	}
	if n, _ := store.Load("s"); n != 131800 {
		t.Errorf("cached = %d, want reconstructed 131800 not the breakdown", n)
	}
	if got := Percent(res, 200000); got != 65 {
		t.Errorf("Percent() = %d, want 65", got)
	}
}

func TestResolveCacheFallback(t *testing.T) {
	store := cache.NewMemory()
	store.Save("s", 50000)
	r := &Resolver{Store: store}

	res := r.Resolve(snapshot(`{"session_id":"s","context_window":{"context_window_size":100000}}`))
	if res.Total != 50000 || res.Source != SourceCache || res.HasPercent {
		t.Fatalf("Resolve() = %+v, want cached 50000", res)
	}
	if got := Percent(res, 100000); got != 50 {
		t.Errorf("Percent() = %d, want 50", got)
	}
	// The cache holds tokens, so a different capacity changes the percent.
	if got := Percent(res, 200000); got != 25 {
		t.Errorf("Percent() = %d, want 25", got)
	}

	res = r.Resolve(snapshot(`{"session_id":"other"}`))
	if res.Total != 0 {
		t.Errorf("Total for unknown session = %d, want 0", res.Total)
	}
}

func TestResolveDegradesOnCacheErrors(t *testing.T) {
	store := cache.NewMemory()
	store.Err = errors.New("read-only")
	r := &Resolver{Store: store}
	res := r.Resolve(snapshot(`{"context_window":{"current_usage":{"input_tokens":10}}}`))
	if res.Total != 10 {
		t.Errorf("Total = %d, want 10 despite failed save", res.Total)
	}

	var nilStore Resolver
	if res := nilStore.Resolve(snapshot(`{}`)); res.Total != 0 {
		t.Errorf("Resolve() without store = %+v", res)
	}
}

func TestResolveNegativePercent(t *testing.T) {
	r := &Resolver{Store: cache.NewMemory()}
	res := r.Resolve(snapshot(`{"context_window":{"used_percentage":-3}}`))
	if res.Percent != 0 || res.Total != 0 {
		t.Errorf("Resolve() = %+v, want zeros", res)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		capacity int
		want     int
	}{
		{"zero", 0, 200000, 0},
		{"floor", 130512, 200000, 65},
		{"just under one", 1999, 200000, 0},
		{"full", 200000, 200000, 100},
		{"over capacity", 250000, 200000, 125},
		{"large window", 400000, 1000000, 40},
		{"bad capacity", 100000, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(Resolution{Total: tt.total}, tt.capacity); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.total, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestNoData(t *testing.T) {
	if !NoData(0, 0) {
		t.Error("NoData(0, 0) = false")
	}
	if NoData(1, 0) || NoData(0, 1) {
		t.Error("NoData reported no data with a non-zero value")
	}
}

func TestSourceString(t *testing.T) {
	for s, want := range map[Source]string{SourceCache: "cache", SourceReported: "reported", SourceBreakdown: "breakdown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
