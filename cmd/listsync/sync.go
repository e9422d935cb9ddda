package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"listsync/internal/config"
	"listsync/sync"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one reconciliation cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := newRemoteClient(cfg)
			if err != nil {
				return err
			}

			engine := sync.NewEngine(st, client, logger)
			res, err := engine.RunCycle(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconciliation cycle failed: %w", err)
			}

			fmt.Printf("synced in %s: %d linked, %d/%d lists imported/exported, %d/%d items, %d pushed, %d pulled, %d deleted",
				res.Duration.Round(defaultRounding),
				res.Linked, res.ListsImported, res.ListsExported,
				res.ItemsImported, res.ItemsExported,
				res.Pushed, res.Pulled, res.Deleted)
			if res.DeleteRetries > 0 {
				fmt.Printf(", %d deletes pending retry", res.DeleteRetries)
			}
			fmt.Println()
			return nil
		},
	}
}
