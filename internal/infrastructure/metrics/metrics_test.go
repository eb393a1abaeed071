package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.Submission(ResultSuccess)
	r.Submission(ResultRejected)
	r.ItemMutation("create", ResultSuccess)
	r.FileOperation("upload", ResultRejected)
	r.Recalculation()
	r.SubmittedAmount(decimal.NewFromInt(25000))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissions.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemMutations.WithLabelValues("create", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.recalculations))

	count, err := testutil.GatherAndCount(reg, "budget_request_total_amount")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Submission(ResultSuccess)
		r.ItemMutation("delete", ResultError)
		r.FileOperation("delete", ResultSuccess)
		r.Recalculation()
		r.SubmittedAmount(decimal.NewFromInt(1))
	})
}
