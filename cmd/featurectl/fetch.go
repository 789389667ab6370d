package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func fetchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch evaluations once and print the cache as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), cmd, flags, nil)
			if err != nil {
				return err
			}
			defer a.provider.Close()

			if err := a.provider.FetchFeatureConfigs(cmd.Context()); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.provider.GetFeatureConfigs())
		},
	}
}

func telemetryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "telemetry",
		Short: "Fetch evaluations once and print the telemetry line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), cmd, flags, nil)
			if err != nil {
				return err
			}
			defer a.provider.Close()

			if err := a.provider.FetchFeatureConfigs(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.provider.GetFeatureConfigsTelemetry())
			return err
		},
	}
}
