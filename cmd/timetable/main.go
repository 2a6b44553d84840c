// Command timetable runs the scheduling engine from on-disk JSON input:
// `solve` produces a schedule, `validate` only checks input invariants.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("timetable")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "timetable",
		Short: "University teaching-timetable scheduling engine",
	}

	root.PersistentFlags().Duration("time-limit", 0, "solver time budget (overrides config file)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "console", "log format: console or json")
	root.PersistentFlags().String("config", "", "path to a YAML/JSON config file")
	_ = v.BindPFlag("time_limit", root.PersistentFlags().Lookup("time-limit"))
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log_format", root.PersistentFlags().Lookup("log-format"))
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(newSolveCmd(v))
	root.AddCommand(newValidateCmd(v))
	return root
}
