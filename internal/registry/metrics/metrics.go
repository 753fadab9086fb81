package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for the registry module.
type Metrics struct {
	ContributorsCreated *prometheus.CounterVec
	ApplicationsCreated prometheus.Counter
	Rejections          *prometheus.CounterVec
	LamportsCharged     prometheus.Counter
	OperationDuration   *prometheus.HistogramVec
}

// New registers registry metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ContributorsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bountyboard_contributors_created_total",
			Help: "Contributor records created, by path (explicit or implicit)",
		}, []string{"path"}),
		ApplicationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "bountyboard_applications_created_total",
			Help: "Bounty applications created",
		}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bountyboard_registry_rejections_total",
			Help: "Registry operations rejected, by operation and error code",
		}, []string{"operation", "code"}),
		LamportsCharged: f.NewCounter(prometheus.CounterOpts{
			Name: "bountyboard_rent_lamports_charged_total",
			Help: "Lamports debited from payers for record allocation",
		}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bountyboard_registry_operation_duration_seconds",
			Help:    "Duration of registry write operations",
			Buckets: durationBuckets,
		}, []string{"operation"}),
	}
}

// IncrementContributorCreated records a new contributor record. path is
// "explicit" or "implicit".
func (m *Metrics) IncrementContributorCreated(path string) {
	m.ContributorsCreated.WithLabelValues(path).Inc()
}

func (m *Metrics) IncrementApplicationCreated() {
	m.ApplicationsCreated.Inc()
}

func (m *Metrics) IncrementRejection(operation, code string) {
	m.Rejections.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) AddLamportsCharged(lamports uint64) {
	m.LamportsCharged.Add(float64(lamports))
}

// ObserveOperation records how long operation took.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
