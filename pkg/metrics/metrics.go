package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "manosay", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "manosay", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	MailDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "manosay", Name: "mail_deliveries_total", Help: "Notification deliveries by kind and result."},
		[]string{"kind", "result"},
	)
	MailQueueDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "manosay", Name: "mail_queue_dropped_total", Help: "Notifications rejected because the queue was full or closed."},
	)
	StoreConnectAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "manosay", Name: "store_connect_attempts_total", Help: "Document store connection attempts by result."},
		[]string{"result"},
	)
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "manosay", Name: "posts_created_total", Help: "Number of blog posts created."},
	)
	LeadsCaptured = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "manosay", Name: "leads_captured_total", Help: "Number of quote requests persisted."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(MailDeliveries)
	reg.MustRegister(MailQueueDropped)
	reg.MustRegister(StoreConnectAttempts)
	reg.MustRegister(PostsCreated)
	reg.MustRegister(LeadsCaptured)
}
