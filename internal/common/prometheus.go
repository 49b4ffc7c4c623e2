package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	UserSignupTotal            = "user_signup_total"
	ShareEventTotal            = "share_event_total"
	FeedbackSubmittedTotal     = "feedback_submitted_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		UserSignupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: UserSignupTotal,
			Help: "Count of all user signups",
		}, []string{}),
		ShareEventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ShareEventTotal,
			Help: "Count of all share events",
		}, []string{"platform"}),
		FeedbackSubmittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FeedbackSubmittedTotal,
			Help: "Count of all feedback submissions",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)

func RegisterPrometheus() {
	for _, counter := range PromCounters {
		prometheus.MustRegister(counter)
	}

	for _, histogram := range PromHistograms {
		prometheus.MustRegister(histogram)
	}
}
