package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect the consensus layer",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "leader",
			Short: "Print the current Raft leader address",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cli, err := cfg.client()
				if err != nil {
					return err
				}
				leader, err := cli.StatusLeader(cmd.Context())
				if err != nil {
					return err
				}
				if leader == "" {
					return fmt.Errorf("no leader elected")
				}
				fmt.Fprintln(cmd.OutOrStdout(), leader)
				return nil
			},
		},
		&cobra.Command{
			Use:   "peers",
			Short: "Print the Raft peer addresses",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cli, err := cfg.client()
				if err != nil {
					return err
				}
				peers, err := cli.StatusPeers(cmd.Context())
				if err != nil {
					return err
				}
				for _, peer := range peers {
					fmt.Fprintln(cmd.OutOrStdout(), peer)
				}
				return nil
			},
		},
	)
	return cmd
}
