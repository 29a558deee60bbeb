package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead intake flow.
type LeadMetrics struct {
	leadsTotal  *prometheus.CounterVec
	crmRequests *prometheus.CounterVec
	syncLatency *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadbridge",
			Subsystem: "intake",
			Name:      "leads_total",
			Help:      "Total lead submissions by source and outcome",
		}, []string{"source", "status"}),
		crmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadbridge",
			Subsystem: "bitrix",
			Name:      "requests_total",
			Help:      "Total outbound Bitrix24 REST calls",
		}, []string{"method", "status"}),
		syncLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadbridge",
			Subsystem: "sync",
			Name:      "latency_seconds",
			Help:      "End-to-end latency of one lead synchronization",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.crmRequests, m.syncLatency)
	return m
}

func (m *LeadMetrics) ObserveLead(source, status string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(source, status).Inc()
}

// ObserveCRMRequest satisfies bitrix.RequestObserver.
func (m *LeadMetrics) ObserveCRMRequest(method, status string) {
	if m == nil {
		return
	}
	m.crmRequests.WithLabelValues(method, status).Inc()
}

func (m *LeadMetrics) ObserveSyncLatency(source string, seconds float64) {
	if m == nil {
		return
	}
	m.syncLatency.WithLabelValues(source).Observe(seconds)
}
