package token

import (
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tallyledger/tally/internal/ledger"
)

var (
	opCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "token",
		Name:      "op_total",
		Help:      "The total number of token operations by outcome",
	}, []string{"op", "status"})

	opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tally",
		Subsystem: "token",
		Name:      "op_duration_seconds",
		Help:      "The total latency of a token operation",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	}, []string{"op"})

	totalSupplyMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tally",
		Subsystem: "token",
		Name:      "total_supply",
		Help:      "the current total supply",
	})
)

func init() {
	prometheus.MustRegister(opCounter)
	prometheus.MustRegister(opDuration)
	prometheus.MustRegister(totalSupplyMetric)
}

func trackOp(op string) func(error) {
	start := time.Now()
	return func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		opCounter.WithLabelValues(op, status).Inc()
		opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// observeSupply mirrors the on-ledger supply into the gauge. The gauge is a
// float64, so very large supplies lose precision but stay monotonic.
func observeSupply(state *ledger.State) {
	supply, ok := new(big.Float).SetString(state.TotalSupply.String())
	if !ok {
		return
	}
	f, _ := supply.Float64()
	totalSupplyMetric.Set(f)
}
