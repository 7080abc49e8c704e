package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pkt.systems/consulq/client"
	"pkt.systems/pslog"
)

// Version is stamped at build time via -ldflags.
var Version = "devel"

const (
	cliAddrKey        = "client.addr"
	cliSchemeKey      = "client.scheme"
	cliTokenKey       = "client.token"
	cliDatacenterKey  = "client.datacenter"
	cliConsistencyKey = "client.consistency"
	cliSkipVerifyKey  = "client.tls_skip_verify"
	cliTimeoutKey     = "client.timeout"
	cliLogLevelKey    = "client.log_level"
)

func submain(ctx context.Context) int {
	baseLogger := pslog.LoggerFromEnv(
		pslog.WithEnvPrefix("CONSULQ_LOG_"),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeStructured, MinLevel: pslog.WarnLevel}),
		pslog.WithEnvWriter(os.Stderr),
	).With("app", "consulq")
	cmd := newRootCommand(baseLogger)
	ctx = withSignalCancel(ctx)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		return 1
	}
	return 0
}

func withSignalCancel(parent context.Context) context.Context {
	ctx, _ := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return ctx
}

func newRootCommand(baseLogger pslog.Base) *cobra.Command {
	cfg := &cliConfig{baseLogger: baseLogger}
	var verbose bool
	cmd := &cobra.Command{
		Use:           "consulq",
		Short:         "Query and watch a Consul cluster over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("addr", "", "agent address as host:port (default 127.0.0.1:8500 or CONSUL_HTTP_ADDR)")
	flags.String("scheme", "", "URI scheme, http or https")
	flags.String("token", "", "ACL token applied to every request")
	flags.String("dc", "", "datacenter to query (default: the agent's own)")
	flags.String("consistency", "", "read consistency mode (default|consistent|stale)")
	flags.Bool("tls-skip-verify", false, "skip TLS certificate verification")
	flags.Duration("timeout", client.DefaultHTTPTimeout, "HTTP timeout for non-blocking requests")
	flags.String("log-level", "none", "client log level (trace|debug|info|warn|error|none)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose (trace) client logging")

	mustBindFlag(cliAddrKey, "CONSULQ_ADDR", flags.Lookup("addr"))
	mustBindFlag(cliSchemeKey, "CONSULQ_SCHEME", flags.Lookup("scheme"))
	mustBindFlag(cliTokenKey, "CONSULQ_TOKEN", flags.Lookup("token"))
	mustBindFlag(cliDatacenterKey, "CONSULQ_DC", flags.Lookup("dc"))
	mustBindFlag(cliConsistencyKey, "CONSULQ_CONSISTENCY", flags.Lookup("consistency"))
	mustBindFlag(cliSkipVerifyKey, "CONSULQ_TLS_SKIP_VERIFY", flags.Lookup("tls-skip-verify"))
	mustBindFlag(cliTimeoutKey, "CONSULQ_TIMEOUT", flags.Lookup("timeout"))
	mustBindFlag(cliLogLevelKey, "CONSULQ_LOG_LEVEL", flags.Lookup("log-level"))

	cfg.verboseFlag = &verbose

	cmd.AddCommand(
		newKVCommand(cfg),
		newCatalogCommand(cfg),
		newHealthCommand(cfg),
		newSessionCommand(cfg),
		newEventCommand(cfg),
		newStatusCommand(cfg),
		newVersionCommand(),
	)

	return cmd
}

func mustBindFlag(key, env string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for key %s not found", key))
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
	if env != "" {
		if err := viper.BindEnv(key, env); err != nil {
			panic(err)
		}
	}
}

type cliConfig struct {
	loaded      bool
	cfg         client.Config
	timeout     time.Duration
	logger      pslog.Base
	baseLogger  pslog.Base
	verboseFlag *bool
}

// load resolves the effective client configuration. The CONSUL_HTTP_*
// environment supplies the base, CONSULQ_* variables and flags layered
// on top.
func (c *cliConfig) load() error {
	if c.loaded {
		return nil
	}
	cfg, err := client.EnvConfig()
	if err != nil {
		return err
	}
	if addr := viper.GetString(cliAddrKey); addr != "" {
		cfg.Address = addr
	}
	if scheme := viper.GetString(cliSchemeKey); scheme != "" {
		cfg.Scheme = scheme
	}
	if token := viper.GetString(cliTokenKey); token != "" {
		cfg.Token = token
	}
	if dc := viper.GetString(cliDatacenterKey); dc != "" {
		cfg.Datacenter = dc
	}
	if mode := viper.GetString(cliConsistencyKey); mode != "" {
		cfg.Consistency = client.Consistency(mode)
	}
	if viper.GetBool(cliSkipVerifyKey) {
		cfg.TLSSkipVerify = true
	}
	c.cfg = cfg
	c.timeout = viper.GetDuration(cliTimeoutKey)
	if err := c.setupLogger(); err != nil {
		return err
	}
	c.baseLogger.Debug("cli.config.loaded",
		"addr", cfg.Address, "scheme", cfg.Scheme, "dc", cfg.Datacenter,
		"consistency", string(cfg.Consistency))
	c.loaded = true
	return nil
}

func (c *cliConfig) setupLogger() error {
	levelName := strings.TrimSpace(viper.GetString(cliLogLevelKey))
	if c.verboseFlag != nil && *c.verboseFlag {
		levelName = "trace"
	}
	if levelName == "" || levelName == "none" {
		c.logger = pslog.NoopLogger()
		return nil
	}
	level, ok := pslog.ParseLevel(levelName)
	if !ok {
		return fmt.Errorf("invalid log level %q", levelName)
	}
	c.logger = pslog.NewStructured(os.Stderr).LogLevel(level).With("app", "consulq")
	return nil
}

func (c *cliConfig) client() (*client.Client, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	opts := []client.Option{client.WithLogger(c.logger)}
	if c.timeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(c.timeout))
	}
	return client.New(c.cfg, opts...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the consulq version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return nil
		},
	}
}
