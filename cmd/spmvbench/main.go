// Command spmvbench measures the Kronecker-ELL multiply for each strategy
// and vector width on a random gridding stencil, verifies every result
// against the scalar strategy and optionally exports the fastest width as
// tuning data.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	algospmv "github.com/cwbudde/algo-spmv"
	"github.com/cwbudde/algo-spmv/device"
	"github.com/cwbudde/algo-spmv/internal/cpu"
)

type benchResult struct {
	strategy algospmv.Strategy
	width    int
	nsPerOp  float64
	maxErr   float64
}

func main() {
	var (
		rows        = flag.Int("rows", 4096, "number of non-uniform samples")
		gridList    = flag.String("kd", "64,64", "comma-separated grid shape")
		jdList      = flag.String("jd", "6,6", "comma-separated stencil width per axis")
		widthList   = flag.String("widths", "1,2,4,8,16,32", "comma-separated vector widths (1 = scalar)")
		channels    = flag.Int("channels", 1, "interleaved channels (>1 benchmarks the batched strategy)")
		iters       = flag.Int("iters", 50, "benchmark iterations")
		warmup      = flag.Int("warmup", 5, "warmup iterations")
		concurrency = flag.Int("concurrency", 0, "max concurrent groups (0 = GOMAXPROCS)")
		tuningFile  = flag.String("tuning", "", "export the fastest width to a tuning file")
		seed        = flag.Int64("seed", 1, "rng seed")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	kd := parseList(*gridList)
	jd := parseList(*jdList)
	widths := parseList(*widthList)

	if len(kd) == 0 || len(kd) != len(jd) || len(widths) == 0 {
		logger.Error("invalid shape flags", "kd", *gridList, "jd", *jdList, "widths", *widthList)
		os.Exit(2)
	}

	rnd := rand.New(rand.NewSource(*seed))

	tables := randomStencil(rnd, *rows, kd, jd)

	m, err := algospmv.NewKroneckerELL(tables)
	if err != nil {
		logger.Error("build stencil", "err", err)
		os.Exit(1)
	}

	reps := max(*channels, 1)
	vec := make([]complex64, m.Cols()*reps)

	for i := range vec {
		vec[i] = complex(rnd.Float32()*2-1, rnd.Float32()*2-1)
	}

	backend := device.NewCPUBackend(*concurrency)
	features := cpu.DetectFeatures()

	logger.Info("stencil ready",
		"rows", m.Rows(), "cols", m.Cols(), "taps", m.ProdJd(), "channels", reps,
		"cpu", features.String(), "preferred_width", features.PreferredVecWidth(),
		"concurrency", backend.Concurrency())

	results, err := benchmark(logger, m, vec, reps, widths, *iters, *warmup, backend)
	if err != nil {
		logger.Error("benchmark", "err", err)
		os.Exit(1)
	}

	printResults(results)

	if *tuningFile != "" && len(results) > 0 {
		best := results[0]

		tuning := algospmv.NewTuning()
		if err := tuning.Record(m.Format(), m.ProdJd(), best.width); err != nil {
			logger.Error("record tuning", "err", err)
			os.Exit(1)
		}

		if err := algospmv.ExportTuningTo(*tuningFile, tuning); err != nil {
			logger.Error("export tuning", "err", err)
			os.Exit(1)
		}

		logger.Info("tuning exported", "file", *tuningFile, "width", best.width)
	}
}

func benchmark(
	logger *slog.Logger,
	m *algospmv.KroneckerELL,
	vec []complex64,
	reps int,
	widths []int,
	iters, warmup int,
	backend device.Backend,
) ([]benchResult, error) {
	baseOpts := algospmv.PlanOptions{Strategy: algospmv.StrategyScalar, Backend: backend}
	if reps > 1 {
		baseOpts = algospmv.PlanOptions{Strategy: algospmv.StrategyBatched, VecWidth: 1, Channels: reps, Backend: backend}
	}

	base, err := algospmv.NewPlan(m, baseOpts)
	if err != nil {
		return nil, err
	}

	want := make([]complex64, base.OutLen())
	if err := base.Multiply(want, vec); err != nil {
		return nil, err
	}

	results := make([]benchResult, 0, len(widths))

	for _, width := range widths {
		opts := algospmv.PlanOptions{Strategy: algospmv.StrategyVector, VecWidth: width, Backend: backend}

		switch {
		case reps > 1:
			opts.Strategy = algospmv.StrategyBatched
			opts.Channels = reps
		case width == 1:
			opts = baseOpts
		}

		plan, err := algospmv.NewPlan(m, opts)
		if err != nil {
			logger.Warn("skip width", "width", width, "err", err)
			continue
		}

		out := make([]complex64, plan.OutLen())

		for range warmup {
			if err := plan.Multiply(out, vec); err != nil {
				return nil, err
			}
		}

		runtime.GC()

		start := time.Now()

		for range iters {
			if err := plan.Multiply(out, vec); err != nil {
				return nil, err
			}
		}

		elapsed := time.Since(start)

		res := benchResult{
			strategy: plan.Strategy(),
			width:    plan.VecWidth(),
			nsPerOp:  float64(elapsed.Nanoseconds()) / float64(max(iters, 1)),
			maxErr:   maxRelErr(out, want),
		}
		logger.Debug("measured", "strategy", res.strategy, "width", res.width, "ns_per_op", res.nsPerOp)

		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].nsPerOp < results[j].nsPerOp
	})

	return results, nil
}

func printResults(results []benchResult) {
	title := cases.Title(language.English)

	fmt.Printf("%10s  %6s  %14s  %12s\n",
		title.String("strategy"), title.String("width"), title.String("ns/op"), title.String("max rel err"))

	for _, res := range results {
		fmt.Printf("%10s  %6d  %14.1f  %12.3g\n", title.String(res.strategy.String()), res.width, res.nsPerOp, res.maxErr)
	}
}

// maxRelErr returns max |got-want| / max(1, ||want||_inf).
func maxRelErr(got, want []complex64) float64 {
	norm, worst := 1.0, 0.0

	for _, w := range want {
		norm = math.Max(norm, cmplx.Abs(complex128(w)))
	}

	for i := range want {
		worst = math.Max(worst, cmplx.Abs(complex128(got[i])-complex128(want[i])))
	}

	return worst / norm
}

func parseList(list string) []int {
	parts := strings.Split(list, ",")

	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var n int

		_, err := fmt.Sscanf(part, "%d", &n)
		if err != nil || n <= 0 {
			continue
		}

		out = append(out, n)
	}

	return out
}
