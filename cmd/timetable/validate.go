package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f2re/planer-solving/internal/ingest"
	"github.com/f2re/planer-solving/internal/logging"
	"github.com/f2re/planer-solving/internal/validate"
)

func newValidateCmd(v *viper.Viper) *cobra.Command {
	var inputDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check on-disk JSON input against the engine's invariants, without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(v.GetString("log_level"), v.GetString("log_format"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			data, err := ingest.LoadDataSet(inputDir)
			if err != nil {
				return fmt.Errorf("loading input: %w", err)
			}

			warnings, err := validate.Validate(data)
			for _, w := range warnings {
				fmt.Fprintln(os.Stdout, "warning:", w)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, "invalid:", err)
				os.Exit(1)
			}
			fmt.Println("input is valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "directory containing the input JSON files")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
