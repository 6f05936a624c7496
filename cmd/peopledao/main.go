package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/arloliu/peopledao"
	v1 "github.com/arloliu/peopledao/adapter/cql/v1"
	"github.com/arloliu/peopledao/contrib/logging/zerologadapter"
	"github.com/arloliu/peopledao/contrib/metrics/vm"
	"github.com/arloliu/peopledao/internal/cliconfig"
	"github.com/arloliu/peopledao/policy"
)

var exampleUsage = strings.TrimSpace(`
  peopledao --host 127.0.0.1 --retry-budget 3
  peopledao --config $HOME/.peopledao/config.yaml --metrics
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "peopledao",
		Short:   "Store a person in Cassandra and list everyone in the people table",
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides the file; explicit flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			daoCfg, err := cfg.DAOConfig()
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}

			log = log.Level(level)
			log.Info().Interface("config", cfg).Msg("configuration")

			logger := zerologadapter.New(log)
			opts := []peopledao.Option{
				peopledao.WithLogger(logger),
				peopledao.WithReadRetryPolicy(
					policy.NewLoggingRetry(policy.NewDowngradingRetry(daoCfg.RetryBudget), logger),
				),
			}

			var collector *vm.Collector
			if cfg.Metrics {
				collector = vm.New()
				opts = append(opts, peopledao.WithMetrics(collector))
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cmd, daoCfg, opts); err != nil {
				return err
			}

			if collector != nil {
				collector.WritePrometheus(cmd.ErrOrStderr())
			}

			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, TOML or YAML (default: $HOME/.peopledao/config.toml)")
	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "Cassandra contact point")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Cassandra native protocol port")
	root.Flags().StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "keyspace holding the person table")

	root.Flags().IntVar(&cfg.RetryBudget, "retry-budget", cfg.RetryBudget, "read retries allowed after a timeout")
	root.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "per-statement timeout")
	root.Flags().DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "connection handshake timeout")
	root.Flags().StringVar(&cfg.ReadConsistency, "read-consistency", cfg.ReadConsistency, "baseline read consistency level")
	root.Flags().StringVar(&cfg.WriteConsistency, "write-consistency", cfg.WriteConsistency, "write consistency level")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "print Prometheus metrics to stderr on exit")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("peopledao")
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cobra.Command, cfg peopledao.Config, opts []peopledao.Option) error {
	dao, err := peopledao.NewPersonDAO(v1.NewDialer(), cfg, opts...)
	if err != nil {
		return err
	}

	if err := dao.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer dao.Disconnect()

	if err := dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 30)); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	people, err := dao.RetrieveAll(ctx)
	if err != nil {
		return fmt.Errorf("retrieve: %w", err)
	}

	for _, p := range people {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}

	return nil
}
