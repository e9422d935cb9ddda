package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"listsync/internal/config"
	"listsync/internal/logging"
	"listsync/sync"
)

const defaultRounding = time.Millisecond

func newDaemonCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Reconcile on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if !cfg.Sync.Enabled {
				return fmt.Errorf("sync is disabled in config")
			}

			if logFile != "" {
				logger = logging.Setup(logging.Options{Verbose: flagVerbose, LogFile: logFile})
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := newRemoteClient(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine := sync.NewEngine(st, client, logger)
			interval := time.Duration(cfg.Sync.IntervalSeconds) * time.Second
			sync.NewScheduler(engine, interval, logger).Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "also write rotating JSON logs to this file")
	return cmd
}
