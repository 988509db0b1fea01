// Clocklab replays an access trace against a set of page-replacement
// policies and reports their hit ratios side by side.

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/nobletooth/clocklab/pkg/analysis"
	_ "github.com/nobletooth/clocklab/pkg/clockpro" // Registers both CLOCK-Pro engines.
	"github.com/nobletooth/clocklab/pkg/policy"
	"github.com/nobletooth/clocklab/pkg/trace"
	"github.com/nobletooth/clocklab/pkg/utils"
)

var (
	printVersion = flag.Bool("print_version", false, "Print the version and exit.")
	policiesFlag = flag.String("policies", "clockpro", "Comma separated policy names to simulate.")

	maximumSize           = flag.Int("maximum_size", 512, "Resident capacity of every simulated policy.")
	percentMinCold        = flag.Float64("percent_min_cold", 0.01, "Lower bound of the cold resident share.")
	percentMaxCold        = flag.Float64("percent_max_cold", 0.99, "Upper bound of the cold resident share.")
	lowerBoundCold        = flag.Int("lower_bound_cold", 2, "Absolute floor for the minimum cold size.")
	nonResidentMultiplier = flag.Float64("non_resident_multiplier", 1,
		"Reserved ghost list multiplier; recognised but currently unused.")

	traceName = flag.String("trace", "zipf", "Trace to replay: zipf/uniform/loop/scan/file.")
	traceFile = flag.String("trace_file", "", "Path of the trace file when -trace=file.")
	events    = flag.Int("events", 100_000, "Number of accesses to replay for synthetic traces.")
	maxKey    = flag.Uint64("max_key", 10_000, "Largest key synthetic traces draw from.")
	zipfS     = flag.Float64("zipf_s", 1.25, "Zipf skew parameter, must be > 1.")
	zipfV     = flag.Float64("zipf_v", 1, "Zipf value parameter, must be >= 1.")
	seed      = flag.Uint64("seed", 42, "Seed for synthetic traces.")
	analyze   = flag.Bool("analyze", false, "Also print a workload analysis of the trace.")
)

func main() {
	flag.Parse()
	utils.InitLogging()

	if *printVersion {
		slog.Info("Clocklab build info.", "version", utils.Version, "commit", utils.Commit, "build", utils.BuildTime)
		return
	}

	keys, err := traceKeys()
	if err != nil {
		slog.Error("Failed to build the trace.", "error", err)
		os.Exit(1)
	}
	slog.Info("Trace ready.", "trace", *traceName, "events", len(keys))

	opts := policy.Options{
		MaximumSize:           *maximumSize,
		PercentMinCold:        *percentMinCold,
		PercentMaxCold:        *percentMaxCold,
		LowerBoundCold:        *lowerBoundCold,
		NonResidentMultiplier: *nonResidentMultiplier,
	}
	names := strings.Split(*policiesFlag, ",")
	snapshots, err := runPolicies(names, opts, keys)
	if err != nil {
		slog.Error("Simulation failed.", "error", err)
		os.Exit(1)
	}
	printReport(os.Stdout, snapshots)

	if *analyze {
		printAnalysis(os.Stdout, keys)
	}
}

// traceKeys materialises the configured trace into a key slice every policy
// replays identically.
func traceKeys() ([]uint64, error) {
	if *traceName == "file" {
		if *traceFile == "" {
			return nil, fmt.Errorf("-trace=file requires -trace_file")
		}
		return trace.ReadFile(*traceFile)
	}
	generator, err := trace.New(*traceName, *seed, *maxKey, *zipfS, *zipfV)
	if err != nil {
		return nil, err
	}
	return trace.Keys(generator, *events), nil
}

// runPolicies replays the keys against every named policy concurrently, one
// goroutine per policy. The policies themselves stay single-threaded: each
// instance is driven by exactly one goroutine.
func runPolicies(names []string, opts policy.Options, keys []uint64) ([]policy.Snapshot, error) {
	snapshots := make([]policy.Snapshot, len(names))
	var group errgroup.Group
	for i, name := range names {
		group.Go(func() error {
			p, err := policy.New(strings.TrimSpace(name), opts)
			if err != nil {
				return err
			}
			for _, key := range keys {
				p.Record(key)
			}
			p.Finished()
			snapshots[i] = p.Stats()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// printReport renders one row per policy.
func printReport(w io.Writer, snapshots []policy.Snapshot) {
	table := tabwriter.NewWriter(w, 0 /*minwidth*/, 0 /*tabwidth*/, 2 /*padding*/, ' ', 0)
	fmt.Fprintln(table, "POLICY\tOPERATIONS\tHITS\tMISSES\tEVICTIONS\tHIT RATIO")
	for _, snapshot := range snapshots {
		fmt.Fprintf(table, "%s\t%d\t%d\t%d\t%d\t%.4f\n", snapshot.Policy,
			snapshot.Operations, snapshot.Hits, snapshot.Misses, snapshot.Evictions, snapshot.HitRatio())
	}
	if err := table.Flush(); err != nil {
		slog.Error("Failed to render the report.", "error", err)
	}
}

// printAnalysis characterises the replayed workload.
func printAnalysis(w io.Writer, keys []uint64) {
	analyzer := analysis.NewAnalyzer(uint(len(keys)))
	for _, key := range keys {
		analyzer.Observe(key)
	}
	report := analyzer.Report()
	fmt.Fprintf(w, "\naccesses: %d\ndistinct keys (est.): %d\none-hit wonders (est.): %d (%.1f%%)\n",
		report.Operations, report.EstimatedDistinct, report.EstimatedOneHitWonders, 100*report.OneHitWonderRatio())
}
