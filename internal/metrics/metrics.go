package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BidsAccepted counts bids that passed validation and advanced a
	// lot's price.
	BidsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_bids_accepted_total",
		Help: "Number of accepted bids.",
	})

	// BidsRejected counts rejected bids by rejection reason.
	BidsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_rejected_total",
		Help: "Number of rejected bids, by reason.",
	}, []string{"reason"})

	// LotsSold counts lots closed as SOLD.
	LotsSold = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_lots_sold_total",
		Help: "Number of lots sold.",
	})

	// LotsUnsold counts lots closed as UNSOLD.
	LotsUnsold = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_lots_unsold_total",
		Help: "Number of lots that went unsold.",
	})
)

// HealthFunc reports whether the service's dependencies are reachable.
type HealthFunc func(ctx context.Context) error

// StartServer runs a lightweight HTTP server for /metrics and /healthz on
// its own port, in a goroutine.
func StartServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
