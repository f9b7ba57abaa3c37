package perftests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ledger "offer-bidding/internal/bidLedger"
	"offer-bidding/internal/biddingerrors"
	"offer-bidding/internal/models"
	"offer-bidding/internal/money"
	"offer-bidding/internal/repository"
	"offer-bidding/utils"
)

func TestMain(m *testing.M) {
	utils.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumUsers        int
	NumOffers       int
	ReadRatio       int
	MaxBidIncrement int
	Burst           bool // no delay between ops
}

// OperationMetrics collects latencies from concurrent workers
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)-1))]
	p99 = latencies[int(0.99*float64(len(latencies)-1))]
	return
}

// setupLedger creates a repository and ledger holding numOffers published offers
func setupLedger(numOffers int, opts ...ledger.Option) (*repository.MemoryRepo, *ledger.Ledger) {
	repo := repository.NewMemoryRepo()
	for i := 0; i < numOffers; i++ {
		offerType, minimum := models.OfferNoMinimum, money.Zero()
		if i%2 == 0 {
			offerType, minimum = models.OfferWithMinimum, money.MustParse("100")
		}
		repo.AddOffer(models.Offer{
			OfferID:      fmt.Sprintf("offer_%d", i),
			OwnerID:      fmt.Sprintf("lister_%d", i%10),
			Title:        fmt.Sprintf("Load test offer %d", i),
			Type:         offerType,
			MinimumPrice: minimum,
			Status:       models.OfferPublished,
			CreatedAt:    time.Now().UTC(),
		})
	}
	return repo, ledger.NewLedger(repo, opts...)
}

func cents(v int64) money.Money {
	m, err := money.FromCents(v)
	if err != nil {
		panic(err)
	}
	return m
}

// Benchmark_Load_BiddingSystem runs multiple scenarios
func Benchmark_Load_BiddingSystem(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 200, 0, 50, false},
		{"High-Contention-WriteHeavy", 500, 10, 0, 20, false},
		{"Mixed-Workload", 300, 50, 7, 30, false},
		{"ReadHeavy", 200, 50, 9, 20, false},
		{"Edge-Case-SingleOffer", 100, 1, 5, 10, false},
		{"Peak-Burst", 500, 50, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	_, l := setupLedger(s.NumOffers)
	ctx := context.Background()

	var totalOps, placedBids, rejectedBids, conflicts, totalReads int64
	offerSuccess := make([]int64, s.NumOffers)
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			offerIndex := rnd.Intn(s.NumOffers)
			offerID := fmt.Sprintf("offer_%d", offerIndex)
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				if _, _, err := l.CurrentHighestBid(ctx, offerID); err != nil {
					b.Logf("ignored read error: %v", err)
				}
				atomic.AddInt64(&totalReads, 1)
			} else {
				amount := cents(int64(100+rnd.Intn(s.MaxBidIncrement)) * 100)
				userID := fmt.Sprintf("user_%d", rnd.Intn(s.NumUsers))
				_, err := l.PlaceOrRaiseBid(ctx, offerID, userID, amount)
				switch {
				case err == nil:
					atomic.AddInt64(&placedBids, 1)
					atomic.AddInt64(&offerSuccess[offerIndex], 1)
				case errors.Is(err, biddingerrors.ErrConcurrentModification):
					atomic.AddInt64(&conflicts, 1)
				default:
					atomic.AddInt64(&rejectedBids, 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Offers: %d | Total Ops: %d | Placed: %d | Rejected: %d | Conflicts: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumOffers, totalOps, placedBids, rejectedBids, conflicts, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	for i, v := range offerSuccess {
		if v > 0 {
			b.Logf("Offer %d successful bids: %d", i, v)
		}
	}
}
