package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"listsync/internal/credentials"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the remote API token in the OS keyring",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <token>",
			Short: "Store the remote API token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := credentials.StoreInKeyring(args[0]); err != nil {
					return err
				}
				fmt.Println("token stored in keyring")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored remote API token",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := credentials.DeleteFromKeyring(); err != nil {
					return err
				}
				fmt.Println("token removed from keyring")
				return nil
			},
		},
	)
	return cmd
}
