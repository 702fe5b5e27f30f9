package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasklist/internal/tasks"
)

// withStore opens a session, builds a store that prints to the command's
// output, and runs fn against it.
func withStore(cmd *cobra.Command, opts *options, fn func(*session, *tasks.Store) error) error {
	sess, err := opts.open(false)
	if err != nil {
		return err
	}
	defer sess.Close()
	view := newTextView(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return fn(sess, sess.store(view))
}

// lookup resolves ref against the current collection.
func lookup(store *tasks.Store, ref string) (tasks.Task, error) {
	list, err := store.List()
	if err != nil {
		return tasks.Task{}, shown(err)
	}
	return resolveRef(list, ref)
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ *session, store *tasks.Store) error {
				_, err := store.Add(strings.Join(args, " "))
				return shown(err)
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the task list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ *session, store *tasks.Store) error {
				if format == formatText {
					_, err := store.Refresh()
					return shown(err)
				}
				list, err := store.List()
				if err != nil {
					return shown(err)
				}
				return writeTasks(cmd.OutOrStdout(), format, list)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, markdown, json or yaml")
	return cmd
}

func newToggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <ref>",
		Aliases: []string{"done"},
		Short:   "Flip a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ *session, store *tasks.Store) error {
				t, err := lookup(store, args[0])
				if err != nil {
					return err
				}
				return shown(store.Toggle(t.ID))
			})
		},
	}
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ *session, store *tasks.Store) error {
				t, err := lookup(store, args[0])
				if err != nil {
					return err
				}
				return shown(store.Edit(t.ID, strings.Join(args[1:], " ")))
			})
		},
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ *session, store *tasks.Store) error {
				t, err := lookup(store, args[0])
				if err != nil {
					return err
				}
				return shown(store.Remove(t.ID))
			})
		},
	}
}

func newClearDoneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-done",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ *session, store *tasks.Store) error {
				n, err := store.ClearCompleted()
				if err != nil {
					return shown(err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Cleared %d completed\n", n)
				return nil
			})
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase the stored task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(sess *session, store *tasks.Store) error {
				if err := sess.kv.Delete(sess.cfg.StorageKey); err != nil {
					return fmt.Errorf("deleting %q: %w", sess.cfg.StorageKey, err)
				}
				sess.log.Info("task list reset", "key", sess.cfg.StorageKey)
				_, err := store.Refresh()
				return shown(err)
			})
		},
	}
}
