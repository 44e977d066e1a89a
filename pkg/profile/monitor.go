package profile

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/tallyledger/tally/pkg/loggers"
)

// Monitor exposes the process Prometheus metrics over HTTP on /metrics.
type Monitor struct {
	server *http.Server
	logger logrus.FieldLogger
}

func NewMonitor(port int64) *Monitor {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Monitor{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: loggers.Logger(loggers.App),
	}
}

func (m *Monitor) Start() {
	go func() {
		m.logger.WithField("addr", m.server.Addr).Info("Monitor server started")
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.WithError(err).Warn("Monitor server exited")
		}
	}()
}

func (m *Monitor) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.server.Shutdown(ctx)
}
