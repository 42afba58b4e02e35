package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PagesRendered counts pages that received a header, by mode and prefix.
	PagesRendered = "sitenav_pages_rendered_total"

	// MenuToggles counts hamburger clicks, by resulting state.
	MenuToggles = "sitenav_menu_toggles_total"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Noop is a counter that discards increments.
type Noop struct{}

func (Noop) Increment(...string) {}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Set groups the counters recorded while rendering headers.
type Set struct {
	Pages   IncrementalCounter
	Toggles IncrementalCounter
}

// NewSet registers the header counters with reg.
func NewSet(reg prometheus.Registerer) Set {
	return Set{
		Pages:   NewCounterWithRegistry(reg, PagesRendered, "Number of pages rendered with the site header.", "mode", "prefix"),
		Toggles: NewCounterWithRegistry(reg, MenuToggles, "Number of menu toggles.", "state"),
	}
}

// NoopSet returns a set whose counters discard increments.
func NoopSet() Set {
	return Set{Pages: Noop{}, Toggles: Noop{}}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
