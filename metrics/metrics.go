package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters. Handlers increment them through
// the helper methods so tests can assert on a private registry.
type Metrics struct {
	VotesSubmitted     prometheus.Counter
	DashboardReads     prometheus.Counter
	ExportsGenerated   prometheus.Counter
	LedgerReadFailures prometheus.Counter
}

// New registers the service metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotesSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallyboard_votes_submitted_total",
			Help: "Total number of vote records appended to the ledger",
		}),
		DashboardReads: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallyboard_dashboard_reads_total",
			Help: "Total number of dashboard read-and-aggregate cycles",
		}),
		ExportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallyboard_exports_generated_total",
			Help: "Total number of CSV exports generated",
		}),
		LedgerReadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallyboard_ledger_read_failures_total",
			Help: "Total number of ledger reads that failed after retries",
		}),
	}
}

func (m *Metrics) IncVotesSubmitted() {
	m.VotesSubmitted.Inc()
}

func (m *Metrics) IncDashboardReads() {
	m.DashboardReads.Inc()
}

func (m *Metrics) IncExportsGenerated() {
	m.ExportsGenerated.Inc()
}

func (m *Metrics) IncLedgerReadFailures() {
	m.LedgerReadFailures.Inc()
}
