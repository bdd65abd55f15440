package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"green-chemistry-helper/internal/core/chemistry"
	"green-chemistry-helper/internal/core/reaction"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/formatter"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

type reactionFlags struct {
	input     chemistry.ReactionInput
	rulesFile string
	output    string
}

func (f *reactionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input.Products, "products", "p", "", "Expected products (predicted when empty)")
	cmd.Flags().StringVarP(&f.input.Solvent, "solvent", "s", "", "Solvent (see 'greenchem solvents')")
	cmd.Flags().StringVarP(&f.input.Catalyst, "catalyst", "c", "", "Catalyst")
	cmd.Flags().StringVarP(&f.input.Temperature, "temperature", "t", "25", "Reaction temperature in °C")
	cmd.Flags().StringVar(&f.rulesFile, "rules", "", "Path to a custom prediction rules YAML file")
	cmd.Flags().StringVarP(&f.output, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
}

// options 依旗標建立服務選項
func (f *reactionFlags) options() ([]reaction.Option, error) {
	if f.rulesFile == "" {
		return nil, nil
	}
	content, err := os.ReadFile(f.rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	predictor, err := chemistry.NewPredictor(content)
	if err != nil {
		return nil, fmt.Errorf("invalid rules file: %w", err)
	}
	return []reaction.Option{reaction.WithPredictor(predictor)}, nil
}

func newAnalyzeCmd() *cobra.Command {
	f := &reactionFlags{}

	cmd := &cobra.Command{
		Use:   "analyze REACTANTS",
		Short: "Analyze a reaction for environmental impact",
		Long: `Evaluate a reaction and report its eco-rating, environmental issues,
greener alternatives and energy efficiency tips.

Examples:
  # Aldol condensation in ethanol at room temperature
  greenchem analyze "Benzaldehyde + Acetone" -s Ethanol -c NaOH -t 25

  # Machine-readable output
  greenchem analyze "Benzene + Chlorine" -s Dichloromethane -c "Lead acetate" -t 150 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.input.Reactants = args[0]
			return runAnalyze(cmd, f)
		},
	}
	f.bind(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, f *reactionFlags) error {
	if err := formatter.ValidFormat(f.output); err != nil {
		return err
	}
	opts, err := f.options()
	if err != nil {
		return err
	}

	store := report.NewMemoryStore(1, time.Hour, 0)
	defer store.Close()
	svc := reaction.NewService(store, opts...)

	var s *spinner.Spinner
	if f.output == formatter.FormatHuman {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = " Analyzing reaction..."
		s.Start()
	}

	r, err := svc.Analyze(context.Background(), f.input)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	return formatter.DisplayReport(cmd.OutOrStdout(), r, f.output)
}
