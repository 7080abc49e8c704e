package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkt.systems/consulq/client"
)

func newKVCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kv",
		Short: "Read, write, and watch the key/value store",
	}
	cmd.AddCommand(
		newKVGetCommand(cfg),
		newKVPutCommand(cfg),
		newKVDeleteCommand(cfg),
		newKVListCommand(cfg),
		newKVKeysCommand(cfg),
		newKVWatchCommand(cfg),
	)
	return cmd
}

func newKVGetCommand(cfg *cliConfig) *cobra.Command {
	var showMeta bool
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch the value stored under a key",
		Example: `  # Print a value to stdout
  consulq kv get config/app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			idx, pair, err := cli.KVGet(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if pair == nil {
				return fmt.Errorf("no entry for key %q (index %d)", args[0], idx)
			}
			if showMeta {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintf(errOut, "index: %d\n", idx)
				fmt.Fprintf(errOut, "create-index: %d\n", pair.CreateIndex)
				fmt.Fprintf(errOut, "modify-index: %d\n", pair.ModifyIndex)
				fmt.Fprintf(errOut, "flags: %d\n", pair.Flags)
				fmt.Fprintf(errOut, "size: %s\n", humanizeBytes(int64(len(pair.Value))))
				if pair.Session != "" {
					fmt.Fprintf(errOut, "session: %s\n", pair.Session)
				}
			}
			_, err = cmd.OutOrStdout().Write(pair.Value)
			return err
		},
	}
	cmd.Flags().BoolVar(&showMeta, "show-meta", false, "print index metadata to stderr")
	return cmd
}

func newKVPutCommand(cfg *cliConfig) *cobra.Command {
	var flagsValue uint64
	var cas int64
	var acquire, release string
	cmd := &cobra.Command{
		Use:   "put <key> [value]",
		Short: "Store a value under a key",
		Example: `  # Store a literal value
  consulq kv put config/app '{"debug":true}'

  # Pipe a value from stdin
  cat app.json | consulq kv put config/app

  # Create only if the key does not exist yet
  consulq kv put --cas 0 leader/slot $(hostname)`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			var value []byte
			if len(args) == 2 {
				value = []byte(args[1])
			} else {
				value, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			opts := &client.KVPutOptions{Flags: flagsValue, Acquire: acquire, Release: release}
			if cas >= 0 {
				v := uint64(cas)
				opts.CAS = &v
			}
			ok, err := cli.KVPut(cmd.Context(), args[0], value, opts)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("write to %q rejected (check-and-set mismatch)", args[0])
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s to %s\n", humanizeBytes(int64(len(value))), args[0])
			return nil
		},
	}
	cmd.Flags().Uint64Var(&flagsValue, "flags", 0, "opaque unsigned value stored with the entry")
	cmd.Flags().Int64Var(&cas, "cas", -1, "check-and-set index (0 means create-only; negative disables)")
	cmd.Flags().StringVar(&acquire, "acquire", "", "acquire a lock with this session")
	cmd.Flags().StringVar(&release, "release", "", "release a lock held by this session")
	return cmd
}

func newKVDeleteCommand(cfg *cliConfig) *cobra.Command {
	var recurse bool
	var cas int64
	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a key, or a whole prefix with --recurse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			opts := &client.KVDeleteOptions{Recurse: recurse}
			if cas >= 0 {
				v := uint64(cas)
				opts.CAS = &v
			}
			ok, err := cli.KVDelete(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("delete of %q rejected (check-and-set mismatch)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&recurse, "recurse", false, "delete every key under the prefix")
	cmd.Flags().Int64Var(&cas, "cas", -1, "check-and-set index (negative disables)")
	return cmd
}

func newKVListCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <prefix>",
		Short: "List entries under a prefix as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, pairs, err := cli.KVList(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), pairs)
		},
	}
	return cmd
}

func newKVKeysCommand(cfg *cliConfig) *cobra.Command {
	var separator string
	cmd := &cobra.Command{
		Use:   "keys <prefix>",
		Short: "List key names under a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			_, keys, err := cli.KVKeys(cmd.Context(), args[0], &client.KVKeysOptions{Separator: separator})
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&separator, "separator", "", "truncate keys after this string for directory-style listings")
	return cmd
}

func newKVWatchCommand(cfg *cliConfig) *cobra.Command {
	var wait time.Duration
	var once bool
	cmd := &cobra.Command{
		Use:   "watch <key>",
		Short: "Long-poll a key and print each change as JSON",
		Long: strings.TrimSpace(`
Watch blocks on the key's modification index: each read hands the
returned index back to the server, which holds the request until the
key changes or the wait elapses. An unchanged key wakes the loop
without output. Interrupt to stop.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cfg.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var idx uint64
			for {
				opts := &client.KVGetOptions{QueryOptions: client.QueryOptions{Index: idx, Wait: wait}}
				next, pair, err := cli.KVGet(ctx, args[0], opts)
				if err != nil {
					return err
				}
				if next != idx {
					if err := writeJSON(cmd.OutOrStdout(), pair); err != nil {
						return err
					}
					if once && idx != 0 {
						return nil
					}
				}
				idx = next
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 5*time.Minute, "maximum hold time per long poll")
	cmd.Flags().BoolVar(&once, "once", false, "exit after the first observed change")
	return cmd
}

func humanizeBytes(n int64) string {
	return strings.ReplaceAll(humanize.Bytes(uint64(n)), " ", "")
}
