// Package config loads the named parameter blocks that drive the AnonPSI
// attack engines and the GCMS / unknown-domain LDP pipeline.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document. Only the section(s)
// relevant to a given run need be populated; zero values are filled in by
// SetDefaults.
type Config struct {
	Attack struct {
		Tau               int     `yaml:"tau"`                // protocol invocation budget
		ComputationBudget int     `yaml:"computation_budget"` // tree-sum-explorer enumeration budget
		LowerBound        float64 `yaml:"lower_bound"`        // act-Bayesian absorbing lower threshold
		UpperBound        float64 `yaml:"upper_bound"`        // act-Bayesian absorbing upper threshold
		Tolerance         float64 `yaml:"tolerance"`          // act-Bayesian bar tolerance delta
		LaplacianScale    float64 `yaml:"laplacian_scale"`    // act-Bayesian Laplace scale
		SampleRate        float64 `yaml:"sample_rate"`        // act-Bayesian inclusion sampling rate
		MemoSize          int     `yaml:"memo_size"`          // n_max for the gamma/phi memo build
	} `yaml:"attack"`
	GCMS struct {
		K int     `yaml:"k"` // number of hash functions
		M int     `yaml:"m"` // hash range
		S int     `yaml:"s"` // payload size per message
		P float64 `yaml:"p"` // inclusion probability
	} `yaml:"gcms"`
	UnknownDomain struct {
		Delta   float64 `yaml:"delta"`
		Epsilon float64 `yaml:"epsilon"`
	} `yaml:"unknown_domain"`
	Logging struct {
		Level       string `yaml:"level"`         // debug, info, warn, error
		File        string `yaml:"file"`          // log file path, empty for stdout
		EnableAudit bool   `yaml:"enable_audit"`  // enable audit trail for crypto/decrypt events
		AuditFile   string `yaml:"audit_file"`
	} `yaml:"logging"`
	Timeouts struct {
		OracleCallTimeout time.Duration `yaml:"oracle_call_timeout"`
	} `yaml:"timeouts"`
}

// SetDefaults fills in reasonable values for fields the document left unset.
func (c *Config) SetDefaults() {
	if c.Attack.Tolerance == 0 {
		c.Attack.Tolerance = 0.01
	}
	if c.Attack.LaplacianScale == 0 {
		c.Attack.LaplacianScale = 1.0
	}
	if c.Attack.SampleRate == 0 {
		c.Attack.SampleRate = 0.5
	}
	if c.Attack.UpperBound == 0 {
		c.Attack.UpperBound = 0.99
	}
	if c.Attack.MemoSize == 0 {
		c.Attack.MemoSize = 32
	}

	if c.GCMS.K == 0 {
		c.GCMS.K = 1000
	}
	if c.GCMS.M == 0 {
		c.GCMS.M = 1024
	}
	if c.GCMS.S == 0 {
		c.GCMS.S = 56
	}
	if c.GCMS.P == 0 {
		c.GCMS.P = 0.5
	}

	if c.UnknownDomain.Epsilon == 0 {
		c.UnknownDomain.Epsilon = 0.1
	}
	if c.UnknownDomain.Delta == 0 {
		c.UnknownDomain.Delta = 1e-6
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Timeouts.OracleCallTimeout == 0 {
		c.Timeouts.OracleCallTimeout = 30 * time.Second
	}
}

// Load reads and parses a YAML configuration file, applying defaults for
// any field the document left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	return &cfg, nil
}
