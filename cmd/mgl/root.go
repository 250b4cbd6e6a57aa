package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// app is the state shared by all subcommands once the root pre-run has
// merged the configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "mgl",
		Short: "Multiple Graphical Lasso solver",
		Long: `mgl estimates K sparse precision matrices jointly from K empirical
covariance matrices under a group (GGL) or fused (FGL) penalty.

Problems are YAML files holding the instances (covariances or raw samples),
the regularizer and the penalty weights. Reports are written as YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = setupLogger(cfg.Output, cmd.ErrOrStderr())

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "configuration file (YAML)")
	pf.String("method", "", "solver: admm, ppdna or warm-ppdna")
	pf.Float64("eps", 0, "KKT tolerance")
	pf.Int("max-iter", 0, "ADMM iteration budget")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Bool("verbose", false, "per-iteration solver logging")
	pf.StringP("output", "o", "", "report file (default stdout)")
	pf.Bool("matrices", true, "include estimated precision matrices in the report")
	bindFlags(a.v, pf, map[string]string{
		"solver.method":    "method",
		"solver.eps":       "eps",
		"solver.max_iter":  "max-iter",
		"solver.verbose":   "verbose",
		"output.log_level": "log-level",
		"output.verbose":   "verbose",
		"output.file":      "output",
		"output.matrices":  "matrices",
	})

	root.AddCommand(newSolveCmd(a), newSelectCmd(a), newCompareCmd(a))

	return root
}

// bindFlags binds config keys to flag names; only flags set on the command
// line override lower layers.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("mgl: bind %s: %v", key, err))
		}
	}
}

// writeReport encodes r as YAML to the configured file or to the command's
// output stream.
func (a *app) writeReport(cmd *cobra.Command, r any) error {
	var w io.Writer = cmd.OutOrStdout()
	if a.cfg.Output.File != "" {
		f, err := os.Create(a.cfg.Output.File)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return enc.Close()
}
