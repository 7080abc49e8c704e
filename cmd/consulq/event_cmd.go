package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/consulq/client"
)

func newEventCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Fire and list custom user events",
	}
	cmd.AddCommand(
		newEventFireCommand(cfg),
		newEventListCommand(cfg),
	)
	return cmd
}

func newEventFireCommand(cfg *cliConfig) *cobra.Command {
	var node, service, tag string
	cmd := &cobra.Command{
		Use:   "fire <name> [payload]",
		Short: "Propagate a custom event through the cluster",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			var payload []byte
			if len(args) == 2 {
				payload = []byte(args[1])
			}
			event, err := cli.EventFire(cmd.Context(), args[0], payload, &client.EventFireOptions{
				NodeFilter:    node,
				ServiceFilter: service,
				TagFilter:     tag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), event.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&node, "node", "", "regexp restricting delivery by node name")
	cmd.Flags().StringVar(&service, "service", "", "regexp restricting delivery by service name")
	cmd.Flags().StringVar(&tag, "tag", "", "regexp restricting delivery by service tag")
	return cmd
}

func newEventListCommand(cfg *cliConfig) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, events, err := cli.EventList(cmd.Context(), name, nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), events)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "only events with this name")
	return cmd
}
