package popover

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func TestMetricsRecordLifecycle(t *testing.T) {
	m := NewMetrics(MetricsConfig{Registry: prometheus.NewRegistry()})
	f := newFixture(t, WithMetrics(m))
	f.attach(Binding{Value: Text("x"), Arg: "right"})

	if got := metricGaugeValue(t, m.triggers); got != 1 {
		t.Errorf("attached_triggers = %v, want 1", got)
	}

	f.trigger.Hover()
	if got := metricCounterValue(t, m.shows.WithLabelValues("hover")); got != 1 {
		t.Errorf("shows_total{hover} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.positions.WithLabelValues("right")); got != 1 {
		t.Errorf("positions_total{right} = %v, want 1", got)
	}
	if got := metricGaugeValue(t, m.open); got != 1 {
		t.Errorf("open = %v, want 1", got)
	}

	f.trigger.Leave()
	if got := metricCounterValue(t, m.hides.WithLabelValues(reasonLeave)); got != 1 {
		t.Errorf("hides_total{leave} = %v, want 1", got)
	}
	f.clock.Advance(200 * time.Millisecond)
	if got := metricGaugeValue(t, m.open); got != 0 {
		t.Errorf("open = %v after fade, want 0", got)
	}

	f.d.Detach(f.trigger)
	if got := metricGaugeValue(t, m.triggers); got != 0 {
		t.Errorf("attached_triggers = %v after detach, want 0", got)
	}
}

func TestMetricsCountStaleAndFailedPositions(t *testing.T) {
	m := NewMetrics(MetricsConfig{Namespace: "test", Registry: prometheus.NewRegistry()})
	solver := &fakeSolver{async: true}
	f := newFixture(t, WithMetrics(m), WithSolver(solver))
	f.attach(Binding{Value: Text("x")})

	f.trigger.Hover()
	f.trigger.Leave()
	solver.flush(0)
	if got := metricCounterValue(t, m.stale); got != 1 {
		t.Errorf("stale_positions_total = %v, want 1", got)
	}

	solver.err = errTest
	f.trigger.Hover()
	solver.flush(1)
	if got := metricCounterValue(t, m.positionErrors); got != 1 {
		t.Errorf("position_errors_total = %v, want 1", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.shown(Hover)
	m.hidden(reasonLeave)
	m.positioned("top")
	m.stalePosition()
	m.positionFailed()
	m.opened(1)
	m.attached(1)
}

var errTest = errors.New("no geometry")
