// Command gcmsdemo runs the General Count Mean Sketch shuffle-model LDP
// pipeline end to end against a synthetic vocabulary: clients privatize and
// encrypt their messages, a shuffler severs sender linkage, and the server
// accumulates the shuffled reports into a sketch and estimates per-message
// frequency. With -mode=unknown-domain it instead runs the two-server
// unknown-vocabulary variant.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"flag"
	"fmt"
	"log"
	mathrand "math/rand"

	"github.com/auroradata-ai/anonpsi-gcms/internal/config"
	"github.com/auroradata-ai/anonpsi-gcms/internal/gcms"
	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
	"github.com/auroradata-ai/anonpsi-gcms/internal/unknowndomain"
)

func main() {
	var (
		mode       = flag.String("mode", "sketch", "Pipeline: sketch or unknown-domain")
		configPath = flag.String("config", "", "Path to a YAML config file (optional, defaults otherwise)")
		clients    = flag.Int("clients", 2000, "Number of simulated client reports")
		rsaBits    = flag.Int("rsa-bits", 2048, "RSA key size for report encryption")
		seed       = flag.Int64("seed", 1, "PRNG seed driving message generation")
		verbose    = flag.Bool("verbose", false, "Enable debug-level logging")
	)
	flag.Parse()

	cfg := config.Config{}
	cfg.SetDefaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("gcmsdemo: loading config: %v", err)
		}
		cfg = *loaded
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if err := telemetry.InitLogger(&cfg, "gcmsdemo"); err != nil {
		log.Fatalf("gcmsdemo: initializing logger: %v", err)
	}

	priv, err := rsa.GenerateKey(rand.Reader, *rsaBits)
	if err != nil {
		log.Fatalf("gcmsdemo: generating RSA key: %v", err)
	}

	rng := mathrand.New(mathrand.NewSource(*seed))
	vocabulary := []string{"chrome", "firefox", "safari", "edge", "opera"}
	weights := []int{900, 600, 300, 150, 50}
	messages := sampleMessages(rng, *clients, vocabulary, weights)

	switch *mode {
	case "sketch":
		runSketch(&cfg, priv, messages, vocabulary)
	case "unknown-domain":
		runUnknownDomain(rng, &cfg, priv, messages)
	default:
		log.Fatalf("gcmsdemo: unknown mode %q", *mode)
	}
}

func sampleMessages(rng *mathrand.Rand, n int, vocabulary []string, weights []int) []string {
	total := 0
	for _, w := range weights {
		total += w
	}
	out := make([]string, n)
	for i := range out {
		r := rng.Intn(total)
		for j, w := range weights {
			if r < w {
				out[i] = vocabulary[j]
				break
			}
			r -= w
		}
	}
	return out
}

func runSketch(cfg *config.Config, priv *rsa.PrivateKey, messages, vocabulary []string) {
	params := gcms.Params{K: cfg.GCMS.K, M: cfg.GCMS.M, S: cfg.GCMS.S, P: cfg.GCMS.P}
	telemetry.Info("gcms sketch: k=%d m=%d s=%d p=%.2f epsilon=%.3f", params.K, params.M, params.S, params.P, params.Epsilon())

	client := gcms.Client{}
	reports := make([][]byte, 0, len(messages))
	for _, msg := range messages {
		ct, err := client.Encode(msg, params, &priv.PublicKey, rand.Reader)
		if err != nil {
			log.Fatalf("gcmsdemo: client encode: %v", err)
		}
		reports = append(reports, ct)
	}

	shuffled, err := gcms.Shuffler{}.Shuffle(reports, rand.Reader)
	if err != nil {
		log.Fatalf("gcmsdemo: shuffle: %v", err)
	}

	server := gcms.NewServer(params.K, params.M, priv)
	if err := server.DecryptAndAccumulate(shuffled); err != nil {
		log.Fatalf("gcmsdemo: server accumulate: %v", err)
	}

	fmt.Printf("accumulated %d reports\n", server.N())
	for _, msg := range vocabulary {
		estimate := server.EstimateFrequency(msg, params.P, params.S)
		fmt.Printf("  %-10s estimated count %.1f\n", msg, estimate)
	}
}

func runUnknownDomain(rng *mathrand.Rand, cfg *config.Config, priv *rsa.PrivateKey, messages []string) {
	// The aux-server's layer wraps a whole server ciphertext plus a 32-byte
	// tag, so its modulus has to be larger than the server's.
	auxPriv, err := rsa.GenerateKey(rand.Reader, priv.Size()*8*2)
	if err != nil {
		log.Fatalf("gcmsdemo: generating aux-server RSA key: %v", err)
	}

	threshold := unknowndomain.Threshold(cfg.UnknownDomain.Epsilon, cfg.UnknownDomain.Delta)
	laplaceScale := unknowndomain.LaplaceScale(cfg.UnknownDomain.Epsilon)
	telemetry.Info("unknown-domain: threshold=%.2f laplace-scale=%.2f", threshold, laplaceScale)

	client := unknowndomain.Client{}
	reports := make([][]byte, 0, len(messages))
	for _, msg := range messages {
		ct, err := client.Encode(msg, &priv.PublicKey, &auxPriv.PublicKey)
		if err != nil {
			log.Fatalf("gcmsdemo: client encode: %v", err)
		}
		reports = append(reports, ct)
	}

	aux := unknowndomain.NewAuxServer(auxPriv)
	survivors, err := aux.Protect(reports, threshold, laplaceScale, rng)
	if err != nil {
		log.Fatalf("gcmsdemo: aux-server protect: %v", err)
	}

	server := unknowndomain.NewServer(priv)
	recovered, err := server.Decrypt(survivors)
	if err != nil {
		log.Fatalf("gcmsdemo: server decrypt: %v", err)
	}

	counts := make(map[string]int)
	for _, msg := range recovered {
		counts[msg]++
	}
	fmt.Printf("released %d of %d messages past threshold\n", len(recovered), len(messages))
	for msg, n := range counts {
		fmt.Printf("  %-10s survived %d time(s)\n", msg, n)
	}
}
