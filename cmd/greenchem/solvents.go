package main

import (
	"green-chemistry-helper/internal/formatter"

	"github.com/spf13/cobra"
)

func newSolventsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "solvents",
		Short: "List supported solvents and greener alternatives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := formatter.ValidFormat(output); err != nil {
				return err
			}
			return formatter.DisplaySolvents(cmd.OutOrStdout(), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")

	return cmd
}
