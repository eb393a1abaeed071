// Package metrics exposes Prometheus counters for budget operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Result labels.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Recorder records budget operation metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	submissions    *prometheus.CounterVec
	itemMutations  *prometheus.CounterVec
	fileOperations *prometheus.CounterVec
	recalculations prometheus.Counter
	requestTotals  prometheus.Histogram
}

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "budget_request_submissions_total",
			Help: "Budget request submissions by result.",
		}, []string{"result"}),
		itemMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "budget_item_mutations_total",
			Help: "Budget item create, update and delete calls by result.",
		}, []string{"operation", "result"}),
		fileOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "budget_file_operations_total",
			Help: "File attachment upload and delete calls by result.",
		}, []string{"operation", "result"}),
		recalculations: factory.NewCounter(prometheus.CounterOpts{
			Name: "budget_total_recalculations_total",
			Help: "Request total recalculations committed.",
		}),
		requestTotals: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "budget_request_total_amount",
			Help:    "Total amount of submitted budget requests.",
			Buckets: prometheus.ExponentialBuckets(1000, 10, 7),
		}),
	}
}

func (r *Recorder) Submission(result string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(result).Inc()
}

func (r *Recorder) ItemMutation(operation, result string) {
	if r == nil {
		return
	}
	r.itemMutations.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) FileOperation(operation, result string) {
	if r == nil {
		return
	}
	r.fileOperations.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) Recalculation() {
	if r == nil {
		return
	}
	r.recalculations.Inc()
}

// SubmittedAmount observes the total of a submitted request.
func (r *Recorder) SubmittedAmount(amount decimal.Decimal) {
	if r == nil {
		return
	}
	r.requestTotals.Observe(amount.InexactFloat64())
}
