package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/katalvlaran/glasso/selection"
	"github.com/katalvlaran/glasso/solver"
)

var errUnknownMethod = errors.New("config: unknown solver method")

// Config is the merged view of defaults, config file, MGL_* environment
// and command-line flags.
type Config struct {
	Solver    SolverConfig    `mapstructure:"solver" yaml:"solver"`
	Selection SelectionConfig `mapstructure:"selection" yaml:"selection"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
}

type SolverConfig struct {
	Method       string  `mapstructure:"method" yaml:"method"`
	Eps          float64 `mapstructure:"eps" yaml:"eps"`
	MaxIter      int     `mapstructure:"max_iter" yaml:"max_iter"`
	PPDNAMaxIter int     `mapstructure:"ppdna_max_iter" yaml:"ppdna_max_iter"`
	Rho          float64 `mapstructure:"rho" yaml:"rho"`
	Sigma0       float64 `mapstructure:"sigma0" yaml:"sigma0"`
	FallbackIter int     `mapstructure:"fallback_iter" yaml:"fallback_iter"`
	Verbose      bool    `mapstructure:"verbose" yaml:"verbose"`
	Measure      bool    `mapstructure:"measure" yaml:"measure"`
}

type SelectionConfig struct {
	Criterion string  `mapstructure:"criterion" yaml:"criterion"`
	Grid1     int     `mapstructure:"grid1" yaml:"grid1"`
	Grid2     int     `mapstructure:"grid2" yaml:"grid2"`
	Gamma     float64 `mapstructure:"gamma" yaml:"gamma"`
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
	NoPrune   bool    `mapstructure:"no_prune" yaml:"no_prune"`
}

type OutputConfig struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`
	// File receives the YAML report; empty means stdout.
	File     string `mapstructure:"file" yaml:"file"`
	Matrices bool   `mapstructure:"matrices" yaml:"matrices"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver.method", solver.MethodWarmPPDNA)
	v.SetDefault("solver.eps", 1e-5)
	v.SetDefault("solver.max_iter", 1000)
	v.SetDefault("solver.ppdna_max_iter", 100)
	v.SetDefault("solver.rho", 1.0)
	v.SetDefault("solver.sigma0", 10.0)
	v.SetDefault("solver.fallback_iter", 1000)
	v.SetDefault("solver.verbose", false)
	v.SetDefault("solver.measure", false)

	v.SetDefault("selection.criterion", "eBIC")
	v.SetDefault("selection.grid1", 6)
	v.SetDefault("selection.grid2", 3)
	v.SetDefault("selection.gamma", selection.DefaultGamma)
	v.SetDefault("selection.threshold", 0.15)
	v.SetDefault("selection.no_prune", false)

	v.SetDefault("output.log_level", "info")
	v.SetDefault("output.verbose", false)
	v.SetDefault("output.file", "")
	v.SetDefault("output.matrices", true)
}

// loadConfig reads path (if non-empty) into v on top of the defaults and
// the MGL_ environment, e.g. MGL_SOLVER_EPS=1e-6.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("MGL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Solver.Method {
	case solver.MethodADMM, solver.MethodPPDNA, solver.MethodWarmPPDNA:
	default:
		return fmt.Errorf("%q: %w", c.Solver.Method, errUnknownMethod)
	}
	if _, err := selection.ParseCriterion(c.Selection.Criterion); err != nil {
		return err
	}

	return nil
}

func (c SolverConfig) admmOptions(l logrus.FieldLogger) solver.ADMMOptions {
	o := solver.DefaultADMMOptions()
	o.Rho, o.MaxIter, o.Eps = c.Rho, c.MaxIter, c.Eps
	o.Verbose, o.Measure, o.Logger = c.Verbose, c.Measure, l

	return o
}

func (c SolverConfig) ppdnaOptions(l logrus.FieldLogger) solver.PPDNAOptions {
	o := solver.DefaultPPDNAOptions()
	o.Sigma0, o.MaxIter, o.Eps = c.Sigma0, c.PPDNAMaxIter, c.Eps
	o.Verbose, o.Measure, o.Logger = c.Verbose, c.Measure, l

	return o
}

func (c SolverConfig) warmOptions(l logrus.FieldLogger) solver.WarmOptions {
	o := solver.NewWarmOptions(c.Eps).WithLogger(l, c.Verbose, c.Measure)
	o.ADMM.Rho = c.Rho
	o.PPDNA.Sigma0, o.PPDNA.MaxIter = c.Sigma0, c.PPDNAMaxIter
	o.FallbackIter = c.FallbackIter

	return o
}

// solveFunc returns the configured solver for method.
func (c SolverConfig) solveFunc(method string, l logrus.FieldLogger) (selection.SolveFunc, error) {
	switch method {
	case solver.MethodADMM:
		return selection.ADMMSolver(c.admmOptions(l)), nil
	case solver.MethodPPDNA:
		return selection.PPDNASolver(c.ppdnaOptions(l)), nil
	case solver.MethodWarmPPDNA:
		return selection.WarmPPDNASolver(c.warmOptions(l)), nil
	}

	return nil, fmt.Errorf("%q: %w", method, errUnknownMethod)
}

func (c SelectionConfig) options(l logrus.FieldLogger) selection.Options {
	o := selection.DefaultOptions()
	o.GridSize1, o.GridSize2 = c.Grid1, c.Grid2
	o.Gamma, o.Threshold = c.Gamma, c.Threshold
	o.DisablePruning = c.NoPrune
	o.Logger = l

	return o
}

func setupLogger(cfg OutputConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		if cfg.Verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}
	}
	if cfg.Verbose && logger.Level < logrus.DebugLevel {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
