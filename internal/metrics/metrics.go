package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FixesObserved         *prometheus.CounterVec
	FixesRejected         prometheus.Counter
	ActiveSessions        prometheus.Gauge
	SessionsOpened        prometheus.Counter
	SessionsResolved      *prometheus.CounterVec
	DistressReadings      *prometheus.CounterVec
	SOSDispatched         *prometheus.CounterVec
	SOSDispatchDuration   prometheus.Histogram
	MonitoredUsers        prometheus.Gauge
	WebhookEventsProduced *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в переданном реестре.
// В тестах передается prometheus.NewRegistry(), чтобы избежать повторной регистрации.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FixesObserved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safety_fixes_observed_total",
			Help: "Total number of accepted position fixes",
		}, []string{"moved"}),
		FixesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "safety_fixes_rejected_total",
			Help: "Total number of position fixes rejected as invalid",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "safety_escalation_sessions_active",
			Help: "Current number of escalation sessions awaiting confirmation",
		}),
		SessionsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "safety_escalation_sessions_opened_total",
			Help: "Total number of escalation sessions opened by the idle watchdog",
		}),
		SessionsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safety_escalation_sessions_resolved_total",
			Help: "Total number of escalation sessions by terminal status",
		}, []string{"status"}),
		DistressReadings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safety_distress_readings_total",
			Help: "Total number of distress readings by resulting action",
		}, []string{"action"}),
		SOSDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safety_sos_dispatched_total",
			Help: "Total number of SOS dispatch outcomes",
		}, []string{"cause", "status"}),
		SOSDispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "safety_sos_dispatch_duration_seconds",
			Help:    "Time taken by a single SOS transport attempt",
			Buckets: prometheus.DefBuckets,
		}),
		MonitoredUsers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "safety_monitored_users",
			Help: "Current number of users with active tracking",
		}),
		WebhookEventsProduced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safety_webhook_events_total",
			Help: "Total number of presentation events by type and delivery status",
		}, []string{"type", "status"}),
	}
}
