package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glasso/selection"
	"github.com/katalvlaran/glasso/solver"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, solver.MethodWarmPPDNA, cfg.Solver.Method)
	assert.Equal(t, 1e-5, cfg.Solver.Eps)
	assert.Equal(t, 1000, cfg.Solver.MaxIter)
	assert.Equal(t, 100, cfg.Solver.PPDNAMaxIter)
	assert.Equal(t, "eBIC", cfg.Selection.Criterion)
	assert.Equal(t, 6, cfg.Selection.Grid1)
	assert.Equal(t, 3, cfg.Selection.Grid2)
	assert.Equal(t, selection.DefaultGamma, cfg.Selection.Gamma)
	assert.Equal(t, "info", cfg.Output.LogLevel)
	assert.True(t, cfg.Output.Matrices)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeFile(t, "mgl.yaml", `
solver:
  method: admm
  max_iter: 50
selection:
  criterion: AIC
  no_prune: true
`)
	t.Setenv("MGL_SOLVER_EPS", "1e-7")
	t.Setenv("MGL_SELECTION_GRID1", "4")

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, solver.MethodADMM, cfg.Solver.Method)
	assert.Equal(t, 50, cfg.Solver.MaxIter)
	assert.Equal(t, 1e-7, cfg.Solver.Eps)
	assert.Equal(t, "AIC", cfg.Selection.Criterion)
	assert.Equal(t, 4, cfg.Selection.Grid1)
	assert.True(t, cfg.Selection.NoPrune)
	// Untouched keys keep their defaults.
	assert.Equal(t, 3, cfg.Selection.Grid2)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeFile(t, "bad.yaml", "solver:\n  method: newton\n")
	_, err = loadConfig(viper.New(), path)
	require.ErrorIs(t, err, errUnknownMethod)

	path = writeFile(t, "crit.yaml", "selection:\n  criterion: HQ\n")
	_, err = loadConfig(viper.New(), path)
	require.ErrorIs(t, err, selection.ErrUnknownCriterion)
}

func TestSolverOptionsFromConfig(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	sc := cfg.Solver
	sc.Eps, sc.Rho, sc.Sigma0, sc.FallbackIter = 1e-6, 2, 5, 0

	a := sc.admmOptions(nil)
	assert.Equal(t, 1e-6, a.Eps)
	assert.Equal(t, 2.0, a.Rho)

	p := sc.ppdnaOptions(nil)
	assert.Equal(t, 5.0, p.Sigma0)
	assert.Equal(t, 100, p.MaxIter)

	w := sc.warmOptions(nil)
	// 10·Eps carries round-off
	assert.InDelta(t, 1e-5, w.ADMM.Eps, 1e-15)
	assert.Equal(t, 1e-6, w.PPDNA.Eps)
	assert.Equal(t, 20, w.ADMM.MaxIter)
	assert.Zero(t, w.FallbackIter)

	for _, m := range []string{solver.MethodADMM, solver.MethodPPDNA, solver.MethodWarmPPDNA} {
		fn, err := sc.solveFunc(m, nil)
		require.NoError(t, err, m)
		require.NotNil(t, fn, m)
	}
	_, err = sc.solveFunc("lbfgs", nil)
	require.ErrorIs(t, err, errUnknownMethod)
}

func TestSetupLogger(t *testing.T) {
	cases := []struct {
		cfg  OutputConfig
		want logrus.Level
	}{
		{OutputConfig{LogLevel: "debug"}, logrus.DebugLevel},
		{OutputConfig{LogLevel: "WARN"}, logrus.WarnLevel},
		{OutputConfig{LogLevel: "error"}, logrus.ErrorLevel},
		{OutputConfig{LogLevel: "", Verbose: true}, logrus.DebugLevel},
		{OutputConfig{LogLevel: "error", Verbose: true}, logrus.DebugLevel},
		{OutputConfig{LogLevel: "loud"}, logrus.InfoLevel},
	}
	for _, tc := range cases {
		l := setupLogger(tc.cfg, io.Discard)
		assert.Equal(t, tc.want, l.GetLevel(), "%+v", tc.cfg)
	}
}
