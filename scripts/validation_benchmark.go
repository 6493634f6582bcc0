//go:build ignore
// +build ignore

// Validation Throughput Benchmark
// Measures batch classification throughput across worker counts using
// synthetic addresses and a canned resolver, so runs are repeatable and
// network-independent.
//
// Usage:
//   go run scripts/validation_benchmark.go --addresses=100000 --workers=8
//   go run scripts/validation_benchmark.go --addresses=20000 --workers=16 --mx-latency=3ms

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/ignite/email-validator/internal/batch"
	"github.com/ignite/email-validator/internal/disposable"
	"github.com/ignite/email-validator/internal/report"
	"github.com/ignite/email-validator/internal/validator"
)

type benchConfig struct {
	Addresses     int
	Workers       int
	MXLatency     time.Duration
	Seed          int64
	InvalidPct    float64
	DisposablePct float64
	DeadPct       float64
}

// cannedResolver answers from the domain name alone: dead* domains have no
// MX, everything else resolves. Latency simulates a DNS round trip.
type cannedResolver struct {
	latency time.Duration
}

func (r *cannedResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	if r.latency > 0 {
		select {
		case <-time.After(r.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if strings.HasPrefix(domain, "dead") {
		return nil, &net.DNSError{Err: "no such host", Name: domain, IsNotFound: true}
	}
	return []*net.MX{{Host: "mx." + domain, Pref: 10}}, nil
}

func generateAddresses(cfg *benchConfig) []string {
	rng := rand.New(rand.NewSource(cfg.Seed))
	addresses := make([]string, 0, cfg.Addresses)

	for i := 0; i < cfg.Addresses; i++ {
		roll := rng.Float64()
		switch {
		case roll < cfg.InvalidPct:
			addresses = append(addresses, fmt.Sprintf("not-an-address-%d", i))
		case roll < cfg.InvalidPct+cfg.DisposablePct:
			addresses = append(addresses, fmt.Sprintf("user%d@throwaway.example", i))
		case roll < cfg.InvalidPct+cfg.DisposablePct+cfg.DeadPct:
			addresses = append(addresses, fmt.Sprintf("user%d@dead%d.example", i, i%100))
		default:
			addresses = append(addresses, fmt.Sprintf("user%d@live%d.example", i, i%1000))
		}
	}
	return addresses
}

func runBench(label string, workers int, addresses []string, latency time.Duration) *batch.RunResult {
	classifier := validator.New(disposable.NewSet("throwaway.example"))
	classifier.SetResolver(&cannedResolver{latency: latency})

	runner := batch.NewRunner(classifier)
	runner.SetWorkers(workers)

	start := time.Now()
	result := runner.Run(context.Background(), addresses)
	elapsed := time.Since(start)

	fmt.Printf("  %-24s %8d addresses in %10s  (%10.0f addr/sec)\n",
		label, len(result.Results), elapsed.Round(time.Millisecond), result.PerSecond())
	return result
}

func main() {
	cfg := &benchConfig{}
	flag.IntVar(&cfg.Addresses, "addresses", 100_000, "Number of synthetic addresses")
	flag.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Number of parallel workers")
	flag.DurationVar(&cfg.MXLatency, "mx-latency", 0, "Simulated latency per MX lookup (e.g. 3ms)")
	flag.Int64Var(&cfg.Seed, "seed", 42, "Random seed for the synthetic mix")
	flag.Float64Var(&cfg.InvalidPct, "invalid-pct", 0.10, "Fraction of malformed addresses")
	flag.Float64Var(&cfg.DisposablePct, "disposable-pct", 0.10, "Fraction of blocklisted addresses")
	flag.Float64Var(&cfg.DeadPct, "dead-pct", 0.10, "Fraction of addresses without MX")
	flag.Parse()

	fmt.Println("=========================================================")
	fmt.Println(" VALIDATION THROUGHPUT BENCHMARK")
	fmt.Println("=========================================================")
	fmt.Printf("Addresses:   %d\n", cfg.Addresses)
	fmt.Printf("Workers:     %d\n", cfg.Workers)
	fmt.Printf("MX latency:  %s\n", cfg.MXLatency)
	fmt.Printf("Mix:         %.0f%% invalid, %.0f%% disposable, %.0f%% dead, rest live\n",
		cfg.InvalidPct*100, cfg.DisposablePct*100, cfg.DeadPct*100)
	fmt.Println("---------------------------------------------------------")

	addresses := generateAddresses(cfg)

	sequential := runBench("sequential (1 worker)", 1, addresses, cfg.MXLatency)
	parallel := sequential
	if cfg.Workers > 1 {
		parallel = runBench(fmt.Sprintf("parallel (%d workers)", cfg.Workers), cfg.Workers, addresses, cfg.MXLatency)
	}

	// Order must be identical regardless of worker count.
	for i := range sequential.Results {
		if sequential.Results[i] != parallel.Results[i] {
			fmt.Printf("ORDER MISMATCH at %d: %+v vs %+v\n", i, sequential.Results[i], parallel.Results[i])
			return
		}
	}

	fmt.Println("---------------------------------------------------------")
	fmt.Println("Status mix:")
	summary := report.BuildSummary(parallel.Results)
	for _, c := range summary.Counts {
		fmt.Printf("  %-30s %8d (%5.1f%%)\n", c.Status, c.Count, c.Percent)
	}
	fmt.Println("=========================================================")
}
