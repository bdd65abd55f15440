package main

import (
	"context"
	"time"

	"green-chemistry-helper/internal/core/reaction"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/formatter"

	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	f := &reactionFlags{}

	cmd := &cobra.Command{
		Use:   "predict REACTANTS",
		Short: "Predict the likely product of a reaction",
		Long: `Predict a reaction product from reactants, catalyst and temperature
using the built-in rule table (or --rules).

Examples:
  greenchem predict "Acetic acid + Ethanol"
  greenchem predict "Alcohol" -c H2SO4 -t 150`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.input.Reactants = args[0]
			if err := formatter.ValidFormat(f.output); err != nil {
				return err
			}
			opts, err := f.options()
			if err != nil {
				return err
			}

			store := report.NewMemoryStore(1, time.Hour, 0)
			defer store.Close()

			product, err := reaction.NewService(store, opts...).Predict(context.Background(), f.input)
			if err != nil {
				return err
			}
			return formatter.DisplayPrediction(cmd.OutOrStdout(), product, f.output)
		},
	}
	f.bind(cmd)

	return cmd
}
