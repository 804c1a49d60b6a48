package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultWrapped       = "wrapped"
	resultNotConnected  = "not_connected"
	resultMintFailed    = "mint_failed"
	resultTokenNotFound = "token_not_found"
	resultWrapFailed    = "wrap_failed"
)

var (
	registry = prometheus.NewRegistry()

	attempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mintwrap",
		Name:      "attempts_total",
		Help:      "Mint and wrap attempts by result.",
	}, []string{"result"})

	inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mintwrap",
		Name:      "in_flight",
		Help:      "1 while a mint and wrap sequence is running.",
	})

	connects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mintwrap",
		Name:      "connects_total",
		Help:      "Wallet connects by provider.",
	}, []string{"provider"})
)

func init() {
	registry.MustRegister(attempts, inFlight, connects)
}

func metricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
