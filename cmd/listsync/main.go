package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"listsync/internal/config"
	"listsync/internal/credentials"
	"listsync/internal/logging"
	"listsync/remote"
	"listsync/store/sqlite"
)

var (
	flagConfig  string
	flagVerbose bool

	logger zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "listsync",
		Short: "Todo lists with background reconciliation against a remote service",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			if flagConfig != "" {
				config.SetConfigPath(flagConfig)
			}
			logger = logging.Setup(logging.Options{Verbose: flagVerbose})
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newSyncCmd(),
		newDaemonCmd(),
		newListsCmd(),
		newAddCmd(),
		newDoneCmd(),
		newRemoveCmd(),
		newRenameCmd(),
		newTokenCmd(),
	)
	return root
}

// openStore opens the configured local database.
func openStore(cfg *config.Config) (*sqlite.Store, error) {
	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local store %s: %w", cfg.DBPath, err)
	}
	return st, nil
}

// newRemoteClient builds the remote client the config selects: the real
// HTTP-backed one, or the in-memory double for running without a network
// dependency.
func newRemoteClient(cfg *config.Config) (remote.Client, error) {
	switch cfg.Remote.Mode {
	case "memory":
		return remote.NewMemoryClient(), nil
	case "http":
		token, err := credentials.Resolve(cfg.Remote.TokenEnv)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("source", string(token.Source)).Msg("resolved remote API token")
		return remote.NewHTTPClient(cfg.Remote.BaseURL, token.Value), nil
	default:
		return nil, fmt.Errorf("unsupported remote mode %q", cfg.Remote.Mode)
	}
}
