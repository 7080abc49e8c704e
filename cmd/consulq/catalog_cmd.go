package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/consulq/client"
)

func newCatalogCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the service catalog",
	}
	cmd.AddCommand(
		newCatalogNodesCommand(cfg),
		newCatalogServicesCommand(cfg),
		newCatalogServiceCommand(cfg),
		newCatalogDatacentersCommand(cfg),
	)
	return cmd
}

func newCatalogNodesCommand(cfg *cliConfig) *cobra.Command {
	var near string
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List every node in the datacenter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, nodes, err := cli.CatalogNodes(cmd.Context(), &client.QueryOptions{Near: near})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), nodes)
		},
	}
	cmd.Flags().StringVar(&near, "near", "", "sort by round-trip time from this node")
	return cmd
}

func newCatalogServicesCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List every service name and its tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, services, err := cli.CatalogServices(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), services)
		},
	}
}

func newCatalogServiceCommand(cfg *cliConfig) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "service <name>",
		Short: "List the nodes providing a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, rows, err := cli.CatalogService(cmd.Context(), args[0], &client.CatalogServiceOptions{Tag: tag})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "filter instances by service tag")
	return cmd
}

func newCatalogDatacentersCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "datacenters",
		Short: "List the known datacenters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			dcs, err := cli.CatalogDatacenters(cmd.Context())
			if err != nil {
				return err
			}
			for _, dc := range dcs {
				fmt.Fprintln(cmd.OutOrStdout(), dc)
			}
			return nil
		},
	}
}
