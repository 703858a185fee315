package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promNamespace = "lp_rebalance_calc"

type promCounter struct {
	counter prometheus.Counter
}

func (p promCounter) Inc() {
	p.counter.Inc()
}

type Prometheus struct {
	Metrics *Metrics

	registry       *prometheus.Registry
	estimates      prometheus.Counter
	rejected       prometheus.Counter
	requestsFailed prometheus.Counter
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	estimates := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "estimates_total",
		Help:      "Total number of rebalancing cost estimates computed.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "estimates_rejected_total",
		Help:      "Total number of estimate requests rejected by input validation.",
	})
	requestsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "requests_failed_total",
		Help:      "Total number of malformed or unserviceable API requests.",
	})

	registry.MustRegister(estimates, rejected, requestsFailed)

	return &Prometheus{
		Metrics: &Metrics{
			Estimates:      promCounter{estimates},
			Rejected:       promCounter{rejected},
			RequestsFailed: promCounter{requestsFailed},
		},
		registry:       registry,
		estimates:      estimates,
		rejected:       rejected,
		requestsFailed: requestsFailed,
	}
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
