package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all service counters.
type Metrics struct {
	OTPIssued      prometheus.Counter
	OTPVerified    prometheus.Counter
	OTPRejected    prometheus.Counter
	OrdersPlaced   prometheus.Counter
	OrderAmount    prometheus.Counter
	HTTPServerReqs *prometheus.CounterVec
}

// New creates and registers the service metrics.
func New() *Metrics {
	return &Metrics{
		OTPIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seva_otp_issued_total",
			Help: "The total number of OTP challenges issued.",
		}),
		OTPVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seva_otp_verified_total",
			Help: "The total number of successful OTP verifications.",
		}),
		OTPRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seva_otp_rejected_total",
			Help: "The total number of rejected OTP verification attempts.",
		}),
		OrdersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seva_orders_placed_total",
			Help: "The total number of orders placed.",
		}),
		OrderAmount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seva_order_amount_total",
			Help: "The cumulative amount of all placed orders.",
		}),
		HTTPServerReqs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seva_http_requests_total",
			Help: "The total number of HTTP requests.",
		}, []string{"code", "method"}),
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
