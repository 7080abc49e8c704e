package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/consulq/client"
)

func newHealthCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Inspect health checks",
	}
	cmd.AddCommand(
		newHealthServiceCommand(cfg),
		newHealthStateCommand(cfg),
		newHealthChecksCommand(cfg),
	)
	return cmd
}

func newHealthServiceCommand(cfg *cliConfig) *cobra.Command {
	var tag string
	var passing bool
	cmd := &cobra.Command{
		Use:   "service <name>",
		Short: "List service instances with their checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, entries, err := cli.HealthService(cmd.Context(), args[0], &client.HealthServiceOptions{
				Tag:     tag,
				Passing: passing,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "filter instances by service tag")
	cmd.Flags().BoolVar(&passing, "passing", false, "only instances whose checks all pass")
	return cmd
}

func newHealthStateCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "state <any|passing|warning|critical>",
		Short: "List every check in the given state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, checks, err := cli.HealthState(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), checks)
		},
	}
}

func newHealthChecksCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "checks <service>",
		Short: "List the checks associated with a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, checks, err := cli.HealthChecks(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), checks)
		},
	}
}
