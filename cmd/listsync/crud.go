package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"listsync/internal/config"
	"listsync/store"
	"listsync/store/sqlite"
)

// Local CRUD surface. These commands only touch the local store; the
// reconciliation engine picks the changes up on the next cycle.

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show all lists and their items",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(config.GetConfig())
			if err != nil {
				return err
			}
			defer st.Close()

			lists, err := st.LoadLists(cmd.Context())
			if err != nil {
				return err
			}

			for _, l := range lists {
				if l.Deleted() {
					continue
				}
				linked := ""
				if l.Linked() {
					linked = " [synced]"
				}
				fmt.Printf("%d: %s%s\n", l.ID, l.Name, linked)
				for _, it := range l.Items {
					if it.Deleted() {
						continue
					}
					mark := " "
					if it.Done {
						mark = "x"
					}
					fmt.Printf("  [%s] %d: %s\n", mark, it.ID, it.Name)
				}
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> [item text...]",
		Short: "Create a list, or add an item to an existing list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(config.GetConfig())
			if err != nil {
				return err
			}
			defer st.Close()

			if len(args) == 1 {
				l, err := st.CreateList(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("created list %d: %s\n", l.ID, l.Name)
				return nil
			}

			l, err := findList(cmd, st, args[0])
			if err != nil {
				return err
			}
			it, err := st.AddItem(cmd.Context(), l.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Printf("added item %d to %s\n", it.ID, l.Name)
			return nil
		},
	}
}

func newDoneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <item-id>",
		Short: "Mark an item complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := openStore(config.GetConfig())
			if err != nil {
				return err
			}
			defer st.Close()
			return st.SetItemDone(cmd.Context(), id, !undo)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "mark the item incomplete instead")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var wholeList bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item (or a whole list with --list)",
		Long: "Delete an item or list. The record is tombstoned locally and removed " +
			"from the remote service on the next reconciliation cycle.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := openStore(config.GetConfig())
			if err != nil {
				return err
			}
			defer st.Close()

			if wholeList {
				return st.DeleteList(cmd.Context(), id)
			}
			return st.DeleteItem(cmd.Context(), id)
		},
	}

	cmd.Flags().BoolVar(&wholeList, "list", false, "delete a list instead of an item")
	return cmd
}

func newRenameCmd() *cobra.Command {
	var wholeList bool

	cmd := &cobra.Command{
		Use:   "rename <id> <new name...>",
		Short: "Rename an item (or a list with --list)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")

			st, err := openStore(config.GetConfig())
			if err != nil {
				return err
			}
			defer st.Close()

			if wholeList {
				return st.RenameList(cmd.Context(), id, name)
			}
			return st.RenameItem(cmd.Context(), id, name)
		},
	}

	cmd.Flags().BoolVar(&wholeList, "list", false, "rename a list instead of an item")
	return cmd
}

// findList resolves a list by numeric id or case-insensitive name.
func findList(cmd *cobra.Command, st *sqlite.Store, ref string) (*store.List, error) {
	lists, err := st.LoadLists(cmd.Context())
	if err != nil {
		return nil, err
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, l := range lists {
			if l.ID == id && !l.Deleted() {
				return l, nil
			}
		}
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, ref) && !l.Deleted() {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no list matching %q", ref)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
