package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pkt.systems/consulq/api"
	"pkt.systems/consulq/client"
)

func newSessionCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage coordination sessions",
	}
	cmd.AddCommand(
		newSessionCreateCommand(cfg),
		newSessionDestroyCommand(cfg),
		newSessionRenewCommand(cfg),
		newSessionListCommand(cfg),
		newSessionInfoCommand(cfg),
	)
	return cmd
}

func newSessionCreateCommand(cfg *cliConfig) *cobra.Command {
	var name, node, behavior string
	var ttl, lockDelay int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session and print its ID",
		Example: `  # A 30 second TTL session whose locks vanish on expiry
  consulq session create --ttl 30 --behavior delete`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			if name == "" {
				name = "consulq-" + uuid.NewString()
			}
			id, err := cli.SessionCreate(cmd.Context(), &api.SessionSpec{
				Name:      name,
				Node:      node,
				Behavior:  behavior,
				TTL:       ttl,
				LockDelay: lockDelay,
			}, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "session name (default consulq-<uuid>)")
	cmd.Flags().StringVar(&node, "node", "", "node to attach the session to (default: the agent's own)")
	cmd.Flags().StringVar(&behavior, "behavior", "", "lock behavior on invalidation (release|delete)")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "session TTL in seconds (10..86400, 0 disables)")
	cmd.Flags().IntVar(&lockDelay, "lock-delay", 0, "lock-delay in seconds (server default 15)")
	return cmd
}

func newSessionDestroyCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <id>",
		Short: "Destroy a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			ok, err := cli.SessionDestroy(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("session %q not destroyed", args[0])
			}
			return nil
		},
	}
}

func newSessionRenewCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "renew <id>",
		Short: "Renew a TTL session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			entry, err := cli.SessionRenew(cmd.Context(), args[0], nil)
			if err != nil {
				if client.IsNotFound(err) {
					return fmt.Errorf("session %q no longer exists", args[0])
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entry)
		},
	}
}

func newSessionListCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, entries, err := cli.SessionList(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}
}

func newSessionInfoCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show one session record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, entry, err := cli.SessionInfo(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("no session %q", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), entry)
		},
	}
}
