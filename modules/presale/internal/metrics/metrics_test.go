package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPresaleMetrics(t *testing.T) {
	m := Presale()
	assert.Same(t, m, Presale())

	purchases := testutil.ToFloat64(m.purchases.WithLabelValues("quote"))
	m.ObservePurchase("quote", 25)
	assert.Equal(t, purchases+1, testutil.ToFloat64(m.purchases.WithLabelValues("quote")))

	claimed := testutil.ToFloat64(m.unitsClaimed)
	m.ObserveClaim(7)
	assert.Equal(t, claimed+7, testutil.ToFloat64(m.unitsClaimed))

	m.ObserveRejection("purchase", "")
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.rejections.WithLabelValues("purchase", "unknown")), 1.0)

	m.SetState(1200, 1)
	assert.Equal(t, 1200.0, testutil.ToFloat64(m.totalSold))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.currentTier))
}

func TestNilMetrics(t *testing.T) {
	var m *PresaleMetrics
	assert.NotPanics(t, func() {
		m.ObservePurchase("native", 1)
		m.ObserveClaim(1)
		m.ObserveRejection("claim", "NOTHING_TO_CLAIM")
		m.IncJournalFailure()
		m.SetState(1, 0)
	})
}
