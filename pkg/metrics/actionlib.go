package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/actionlib/pkg/actionlib"
)

// recorder is the Prometheus implementation of actionlib.MetricsRecorder.
type recorder struct {
	goalsAccepted   prometheus.Counter
	goalsTerminal   *prometheus.CounterVec
	cancelsReceived prometheus.Counter
	statusPublishes prometheus.Counter
	trackedGoals    prometheus.Gauge
}

// NewRecorder creates a Prometheus-backed actionlib.MetricsRecorder.
// Returns actionlib.NoopRecorder{} if InitRegistry has not been called,
// so callers that never enable metrics pay zero overhead.
func NewRecorder(namespace string) actionlib.MetricsRecorder {
	if !IsEnabled() {
		return actionlib.NoopRecorder{}
	}

	reg := GetRegistry()
	labels := prometheus.Labels{"namespace": namespace}

	return &recorder{
		goalsAccepted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "actionlib_goals_accepted_total",
			Help:        "Total number of goals admitted into the status list.",
			ConstLabels: labels,
		}),
		goalsTerminal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        "actionlib_goals_terminal_total",
			Help:        "Total number of goals reaching a terminal status, by status.",
			ConstLabels: labels,
		}, []string{"status"}),
		cancelsReceived: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "actionlib_cancels_received_total",
			Help:        "Total number of cancel requests received.",
			ConstLabels: labels,
		}),
		statusPublishes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "actionlib_status_publishes_total",
			Help:        "Total number of status array publications.",
			ConstLabels: labels,
		}),
		trackedGoals: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name:        "actionlib_tracked_goals",
			Help:        "Number of goals in the status list as of the last publication.",
			ConstLabels: labels,
		}),
	}
}

func (r *recorder) GoalAccepted() { r.goalsAccepted.Inc() }

func (r *recorder) GoalTerminal(status actionlib.StatusCode) {
	r.goalsTerminal.WithLabelValues(status.String()).Inc()
}

func (r *recorder) CancelReceived() { r.cancelsReceived.Inc() }

func (r *recorder) StatusPublished(trackedGoals int) {
	r.statusPublishes.Inc()
	r.trackedGoals.Set(float64(trackedGoals))
}
