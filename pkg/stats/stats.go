package stats

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
	TERABYTE
)

// Settlement results used as label values of SettlementsTotal.
const (
	ResultSettled           = "settled"
	ResultNotActive         = "not_active"
	ResultInsufficientFunds = "insufficient_funds"
	ResultOwnership         = "ownership_mismatch"
	ResultOther             = "other"
)

var (
	// Registry holds every collector exported by the daemon.
	Registry = prometheus.NewRegistry()

	// SettlementsTotal counts buy attempts by result.
	SettlementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketd",
			Name:      "settlements_total",
			Help:      "Number of settlement attempts by result.",
		},
		[]string{"result"},
	)
	// SettledVolumeTotal sums the gross price of every settled sale.
	SettledVolumeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marketd",
		Name:      "settled_volume_total",
		Help:      "Gross price of all settled sales.",
	})
	// ListingsCreatedTotal counts successfully created listings.
	ListingsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marketd",
		Name:      "listings_created_total",
		Help:      "Number of listings created.",
	})
	// TxConflictsTotal counts store transactions retried after a conflict.
	TxConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marketd",
		Name:      "tx_conflicts_total",
		Help:      "Number of store transactions retried because of a write conflict.",
	})
)

func init() {
	Registry.MustRegister(
		SettlementsTotal,
		SettledVolumeTotal,
		ListingsCreatedTotal,
		TxConflictsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordSettlement updates the settlement collectors.
func RecordSettlement(result string, volume uint64) {
	SettlementsTotal.WithLabelValues(result).Inc()
	if result == ResultSettled {
		SettledVolumeTotal.Add(float64(volume))
	}
}

// EnableMemoryStatistics enables go routine that periodically prints memory
// usage of the go process.
func EnableMemoryStatistics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// toGigabytes returns given memory in bytes to gigabytes.
func toGigabytes(bytes uint64) float64 {
	return float64(bytes) / GIGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.3fGB, Heap allocated: %.3fGB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toGigabytes(memStats.TotalAlloc),
		toGigabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}
