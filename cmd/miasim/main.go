// Command miasim drives one adaptive membership-inference attack engine
// against a synthetically generated victim/target pair and reports the
// predicted positive/negative partition of the victim set.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/auroradata-ai/anonpsi-gcms/internal/attack"
	"github.com/auroradata-ai/anonpsi-gcms/internal/config"
	"github.com/auroradata-ai/anonpsi-gcms/internal/csvio"
	"github.com/auroradata-ai/anonpsi-gcms/internal/datasetgen"
	"github.com/auroradata-ai/anonpsi-gcms/internal/memo"
	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

func main() {
	var (
		engine       = flag.String("engine", "baseline", "Attack engine: baseline, improved, dynpathblazer, treesum, actbayesian")
		configPath   = flag.String("config", "", "Path to a YAML config file (optional, defaults otherwise)")
		victimNum    = flag.Int("victim", 64, "Number of victim set elements")
		targetNum    = flag.Int("target", 48, "Number of target set elements")
		dense        = flag.Int("dense", 3, "Sampling density used when drawing the intersecting sets")
		intersection = flag.Int("intersection", 24, "Number of elements shared between victim and target")
		tau          = flag.Int("tau", 20, "Oracle-call budget")
		oracleKind   = flag.String("oracle", "naive", "Oracle backing the cardinality channel: naive or ecdh (cryptographically real blind-ECDH PSI)")
		seed         = flag.Int64("seed", 1, "PRNG seed")
		output       = flag.String("output", "", "CSV file to write Z_pos/Z_neg predictions to (optional)")
		verbose      = flag.Bool("verbose", false, "Enable debug-level logging")
	)
	flag.Parse()

	cfg := config.Config{}
	cfg.SetDefaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("miasim: loading config: %v", err)
		}
		cfg = *loaded
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if err := telemetry.InitLogger(&cfg, "miasim"); err != nil {
		log.Fatalf("miasim: initializing logger: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	victimX, targetY := datasetgen.SetsWithIntersection(rng, *victimNum, *targetNum, *dense, *intersection)
	telemetry.Info("generated victim=%d target=%d elements, true intersection=%d", len(victimX), len(targetY), *intersection)

	counter := &oracle.CallCounter{}
	card := counter.WrapCardinality(buildCardinalityOracle(&cfg, *oracleKind, targetY))

	var result attack.Result
	switch *engine {
	case "baseline":
		result = attack.Baseline(rng, card, victimX, targetY, *tau)
	case "improved":
		result = attack.ImprovedBaseline(rng, card, victimX, targetY, *tau)
	case "dynpathblazer":
		tables, err := memo.Build(max(len(victimX), cfg.Attack.MemoSize))
		if err != nil {
			log.Fatalf("miasim: building memo tables: %v", err)
		}
		result = attack.DynPathBlazer(rng, card, tables, victimX, targetY, *tau)
	case "treesum":
		if *oracleKind == "ecdh" {
			telemetry.Warn("miasim: treesum has no sum channel over ECDHOracle, falling back to the naive PSI-SUM oracle")
		}
		sumOracle := counter.WrapIntSum(oracle.NaiveSumInt)
		params := attack.TreeSumParams{
			ComputationBudget: cfg.Attack.ComputationBudget,
			LowerBound:        1,
			UpperBound:        len(victimX),
			Tolerance:         cfg.Attack.Tolerance,
		}
		if params.ComputationBudget == 0 {
			params.ComputationBudget = 1_000_000
		}
		result = attack.TreeSumExplorer(rng, sumOracle, victimX, targetY, *tau, params)
	case "actbayesian":
		if *oracleKind == "ecdh" {
			telemetry.Warn("miasim: actbayesian queries a binary membership dataset directly and never calls an oracle, -oracle is ignored")
		}
		runActBayesian(rng, &cfg, victimX, targetY, *tau)
		return
	default:
		fmt.Fprintf(os.Stderr, "miasim: unknown engine %q\n", *engine)
		flag.Usage()
		os.Exit(1)
	}

	fmt.Printf("engine=%s oracle-calls=%d |Z_pos|=%d |Z_neg|=%d\n", *engine, counter.Calls(), len(result.ZPos), len(result.ZNeg))
	reportAccuracy(victimX, targetY, result)

	if *output != "" {
		if err := csvio.DumpResults(*output, result.ZPos, result.ZNeg); err != nil {
			log.Fatalf("miasim: writing results: %v", err)
		}
		fmt.Printf("predictions written to %s\n", *output)
	}
}

// buildCardinalityOracle selects the cardinality channel an engine queries
// against targetY. "naive" is a plain map-intersection lookup; "ecdh"
// drives the same query through a cryptographically real blind-ECDH PSI
// exchange (internal/oracle/ecdh.go) bounded by cfg.Timeouts.OracleCallTimeout,
// since unlike the map lookup it does real scalar-multiplication work per
// call and a stuck call shouldn't hang an attack engine's budget loop.
func buildCardinalityOracle(cfg *config.Config, kind string, targetY oracle.Set) oracle.CardinalityOracle {
	switch kind {
	case "ecdh":
		ecdhOracle := oracle.NewECDHOracle(targetY)
		return oracle.WithTimeout(cfg.Timeouts.OracleCallTimeout, ecdhOracle.AsCardinalityOracle())
	case "naive":
		return oracle.NaiveCardinality
	default:
		log.Fatalf("miasim: unknown oracle kind %q (want naive or ecdh)", kind)
		return nil
	}
}

// runActBayesian exercises act-Bayesian separately: it takes a binary
// membership dataset rather than a victim/target oracle pair, so it doesn't
// fit the shared oracle.CallCounter/attack.Result path the other four
// engines share.
func runActBayesian(rng *rand.Rand, cfg *config.Config, victimX, targetY oracle.Set, tau int) {
	dataset := make([]int, 0, len(victimX))
	for _, id := range victimX.Slice() {
		if _, ok := targetY[id]; ok {
			dataset = append(dataset, 1)
		} else {
			dataset = append(dataset, 0)
		}
	}

	params := attack.ActBayesianParams{
		LowerBound:     cfg.Attack.LowerBound,
		UpperBound:     cfg.Attack.UpperBound,
		Tolerance:      cfg.Attack.Tolerance,
		LaplacianScale: cfg.Attack.LaplacianScale,
		SampleRate:     cfg.Attack.SampleRate,
	}
	result := attack.ActBayesian(rng, tau, dataset, params)

	fmt.Printf("engine=actbayesian true-pos-leak=%d true-neg-leak=%d pos-err=%d neg-err=%d\n",
		result.TruePosLeak, result.TrueNegLeak, result.PosErr, result.NegErr)
}

func reportAccuracy(victimX, targetY oracle.Set, result attack.Result) {
	truth := oracle.NaiveIntersection(victimX, targetY)
	correctPos, correctNeg := 0, 0
	for id := range result.ZPos {
		if _, ok := truth[id]; ok {
			correctPos++
		}
	}
	for id := range result.ZNeg {
		if _, ok := truth[id]; !ok {
			correctNeg++
		}
	}
	classified := len(result.ZPos) + len(result.ZNeg)
	if classified == 0 {
		fmt.Println("no elements classified within budget")
		return
	}
	accuracy := float64(correctPos+correctNeg) / float64(classified)
	fmt.Printf("classified=%d/%d accuracy=%.3f\n", classified, len(victimX), accuracy)
}
