package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Writer receives named scalar time series keyed by step index.
// Implementations must be cheap and must never fail loudly: sampling
// treats telemetry as best-effort.
type Writer interface {
	// Scalar records value for the series tag at the given step.
	Scalar(tag string, step int, value float64)
}

// Nop is a Writer that discards every scalar.
type Nop struct{}

// Scalar implements Writer.
func (Nop) Scalar(string, int, float64) {}

// MultiWriter fans every scalar out to all wrapped writers.
// Nil entries are skipped.
func MultiWriter(ws ...Writer) Writer {
	out := make(multi, 0, len(ws))
	for _, w := range ws {
		if w != nil {
			out = append(out, w)
		}
	}
	return out
}

type multi []Writer

func (m multi) Scalar(tag string, step int, value float64) {
	for _, w := range m {
		w.Scalar(tag, step, value)
	}
}

// LogWriter emits each scalar as a zerolog debug event.
type LogWriter struct {
	L zerolog.Logger
}

// Scalar implements Writer.
func (w LogWriter) Scalar(tag string, step int, value float64) {
	w.L.Debug().Str("tag", tag).Int("step", step).Float64("value", value).Msg("scalar")
}

// PromWriter exposes each scalar series as a Prometheus gauge labelled
// by tag. The step index is published as its own gauge so scrapes can be
// correlated with chain progress.
type PromWriter struct {
	scalars *prometheus.GaugeVec
	step    prometheus.Gauge
}

// NewPromWriter registers the sampling gauges with reg and returns the
// writer. Registration failures surface as an error so the caller can
// fall back to another sink.
func NewPromWriter(reg prometheus.Registerer) (*PromWriter, error) {
	w := &PromWriter{
		scalars: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qmc_sampling_scalar",
			Help: "Latest value of a named sampling time series.",
		}, []string{"tag"}),
		step: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qmc_sampling_step",
			Help: "Most recent chain step that reported telemetry.",
		}),
	}
	if err := reg.Register(w.scalars); err != nil {
		return nil, err
	}
	if err := reg.Register(w.step); err != nil {
		return nil, err
	}
	return w, nil
}

// Scalar implements Writer.
func (w *PromWriter) Scalar(tag string, step int, value float64) {
	w.scalars.WithLabelValues(tag).Set(value)
	w.step.Set(float64(step))
}
