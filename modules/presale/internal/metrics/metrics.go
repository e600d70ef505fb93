package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type PresaleMetrics struct {
	purchases      *prometheus.CounterVec
	unitsSold      *prometheus.CounterVec
	claims         prometheus.Counter
	unitsClaimed   prometheus.Counter
	rejections     *prometheus.CounterVec
	journalFailure prometheus.Counter
	totalSold      prometheus.Gauge
	currentTier    prometheus.Gauge
}

var (
	presaleOnce     sync.Once
	presaleRegistry *PresaleMetrics
)

// Presale returns the process-wide presale collectors, registered on first use.
func Presale() *PresaleMetrics {
	presaleOnce.Do(func() {
		presaleRegistry = &PresaleMetrics{
			purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "presale_purchases_total",
				Help: "Count of successful purchases by payment currency.",
			}, []string{"currency"}),
			unitsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "presale_units_sold_total",
				Help: "Units sold by payment currency.",
			}, []string{"currency"}),
			claims: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "presale_claims_total",
				Help: "Count of successful claims.",
			}),
			unitsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "presale_units_claimed_total",
				Help: "Units delivered to buyers by claims.",
			}),
			rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "presale_rejections_total",
				Help: "Count of rejected calls by operation and reason.",
			}, []string{"operation", "reason"}),
			journalFailure: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "presale_journal_failures_total",
				Help: "Events that could not be written to the journal.",
			}),
			totalSold: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "presale_total_sold",
				Help: "Units sold across all tiers.",
			}),
			currentTier: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "presale_current_tier",
				Help: "Index of the tier the next unit is sold from.",
			}),
		}
		prometheus.MustRegister(
			presaleRegistry.purchases,
			presaleRegistry.unitsSold,
			presaleRegistry.claims,
			presaleRegistry.unitsClaimed,
			presaleRegistry.rejections,
			presaleRegistry.journalFailure,
			presaleRegistry.totalSold,
			presaleRegistry.currentTier,
		)
	})
	return presaleRegistry
}

func (m *PresaleMetrics) ObservePurchase(currency string, quantity uint64) {
	if m == nil {
		return
	}
	if currency == "" {
		currency = "unknown"
	}
	m.purchases.WithLabelValues(currency).Inc()
	m.unitsSold.WithLabelValues(currency).Add(float64(quantity))
}

func (m *PresaleMetrics) ObserveClaim(quantity uint64) {
	if m == nil {
		return
	}
	m.claims.Inc()
	m.unitsClaimed.Add(float64(quantity))
}

func (m *PresaleMetrics) ObserveRejection(operation, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejections.WithLabelValues(operation, reason).Inc()
}

func (m *PresaleMetrics) IncJournalFailure() {
	if m == nil {
		return
	}
	m.journalFailure.Inc()
}

func (m *PresaleMetrics) SetState(totalSold uint64, tierIndex int) {
	if m == nil {
		return
	}
	m.totalSold.Set(float64(totalSold))
	m.currentTier.Set(float64(tierIndex))
}
