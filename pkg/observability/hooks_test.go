package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSearchHooks{}
	s.OnSearchStart(ctx, EngineDegrees)
	s.OnSearchComplete(ctx, EngineDegrees, 42, time.Second, nil)

	d := NoopDatasetHooks{}
	d.OnLoadStart(ctx, "csv:small")
	d.OnLoadComplete(ctx, "csv:small", 16, 5, false, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "dataset")
	c.OnCacheMiss(ctx, "dataset")
	c.OnCacheSet(ctx, "dataset", 1024)

	h := NoopHTTPHooks{}
	h.OnResponse(ctx, "GET", "/v1/path", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}
	if _, ok := Dataset().(NoopDatasetHooks); !ok {
		t.Error("Dataset() should return NoopDatasetHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	hooks := NewPrometheusHooks(prometheus.NewRegistry())
	SetSearchHooks(hooks)
	SetDatasetHooks(hooks)
	SetCacheHooks(hooks)
	SetHTTPHooks(hooks)
	if Search() != hooks || Dataset() != hooks || Cache() != hooks || HTTP() != hooks {
		t.Error("Set*Hooks should register custom hooks")
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	hooks := NewPrometheusHooks(prometheus.NewRegistry())
	SetSearchHooks(hooks)
	SetSearchHooks(nil)
	if Search() != hooks {
		t.Error("SetSearchHooks(nil) should be ignored")
	}
}

// counterValue sums the samples of a counter family whose labels include
// all of want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)

	h.OnSearchComplete(ctx, EngineDegrees, 10, time.Millisecond, nil)
	h.OnSearchComplete(ctx, EngineDegrees, 0, time.Millisecond, errors.New("boom"))
	h.OnSearchComplete(ctx, EngineMinimax, 500, time.Millisecond, nil)
	h.OnLoadComplete(ctx, "csv", 16, 5, true, time.Millisecond, nil)
	h.OnCacheHit(ctx, "dataset")
	h.OnCacheMiss(ctx, "dataset")
	h.OnCacheSet(ctx, "dataset", 2048)
	h.OnResponse(ctx, "GET", "/v1/path", 200, time.Millisecond)
	h.OnResponse(ctx, "GET", "/v1/path", 404, time.Millisecond)

	tests := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"frontier_searches_total", map[string]string{"engine": "degrees"}, 2},
		{"frontier_searches_total", map[string]string{"status": "error"}, 1},
		{"frontier_searches_total", map[string]string{"engine": "minimax", "status": "ok"}, 1},
		{"frontier_dataset_loads_total", map[string]string{"origin": "cache"}, 1},
		{"frontier_cache_operations_total", map[string]string{"result": "hit"}, 1},
		{"frontier_cache_operations_total", map[string]string{"key_type": "dataset"}, 3},
		{"frontier_cache_written_bytes_total", nil, 2048},
		{"frontier_http_requests_total", map[string]string{"route": "/v1/path"}, 2},
		{"frontier_http_requests_total", map[string]string{"code": "404"}, 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, reg, tt.name, tt.labels); got != tt.want {
			t.Errorf("%s%v = %v, want %v", tt.name, tt.labels, got, tt.want)
		}
	}
}

func TestPrometheusHooksRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering the same metrics twice should panic")
		}
	}()
	NewPrometheusHooks(reg)
}
