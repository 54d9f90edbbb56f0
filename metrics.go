package popover

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/popover/pkg/placement"
)

// MetricsConfig configures directive metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "popover").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Metrics records popover activity. A nil *Metrics records nothing.
//
// Metrics collected:
//   - popover_shows_total: shows by interaction
//   - popover_hides_total: hides by reason
//   - popover_positions_total: applied positions by resolved placement
//   - popover_stale_positions_total: results discarded as stale
//   - popover_position_errors_total: solver failures
//   - popover_open: floating elements currently in the document
//   - popover_attached_triggers: attached trigger elements
type Metrics struct {
	shows          *prometheus.CounterVec
	hides          *prometheus.CounterVec
	positions      *prometheus.CounterVec
	stale          prometheus.Counter
	positionErrors prometheus.Counter
	open           prometheus.Gauge
	triggers       prometheus.Gauge
}

// NewMetrics registers the directive metrics.
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "popover"
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		shows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "shows_total",
			Help:        "Total number of popovers shown",
			ConstLabels: config.ConstLabels,
		}, []string{"interaction"}),

		hides: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "hides_total",
			Help:        "Total number of popovers hidden",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		positions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "positions_total",
			Help:        "Total number of positions applied",
			ConstLabels: config.ConstLabels,
		}, []string{"placement"}),

		stale: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "stale_positions_total",
			Help:        "Total number of position results discarded because the popover changed",
			ConstLabels: config.ConstLabels,
		}),

		positionErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "position_errors_total",
			Help:        "Total number of failed position computations",
			ConstLabels: config.ConstLabels,
		}),

		open: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "open",
			Help:        "Number of floating elements in the document",
			ConstLabels: config.ConstLabels,
		}),

		triggers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "attached_triggers",
			Help:        "Number of attached trigger elements",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) shown(i Interaction) {
	if m != nil {
		m.shows.WithLabelValues(i.String()).Inc()
	}
}

func (m *Metrics) hidden(reason string) {
	if m != nil {
		m.hides.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) positioned(p placement.Placement) {
	if m != nil {
		m.positions.WithLabelValues(string(p)).Inc()
	}
}

func (m *Metrics) stalePosition() {
	if m != nil {
		m.stale.Inc()
	}
}

func (m *Metrics) positionFailed() {
	if m != nil {
		m.positionErrors.Inc()
	}
}

func (m *Metrics) opened(delta float64) {
	if m != nil {
		m.open.Add(delta)
	}
}

func (m *Metrics) attached(delta float64) {
	if m != nil {
		m.triggers.Add(delta)
	}
}
