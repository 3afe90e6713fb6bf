package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/internal/logging"
	"github.com/cwbudde/algo-neuro/io/session"
	"github.com/cwbudde/algo-neuro/io/store"
)

// openStore opens the configured database and ensures its tables exist.
// The returned close function releases the connection.
func (a *app) openStore(ctx context.Context) (*store.Store, func() error, error) {
	db, err := store.Open(a.cfg.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(db, store.WithSessionOptions(a.sessionOptions()...))
	if err := st.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return st, db.Close, nil
}

func (a *app) sessionOptions() []session.Option {
	return []session.Option{
		session.WithCoreOptions(core.WithTimeIndexPrecision(a.cfg.TimeIndexPrecision)),
	}
}

// loadSession resolves ref as a session document path first, then as a
// stored session ID or name.
func (a *app) loadSession(ctx context.Context, ref string) (*session.Session, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		logging.FromContext(ctx).Debug("session.load", "path", ref)
		return session.Load(ref, a.sessionOptions()...)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	st, closeDB, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeDB() }()

	id, err := uuid.Parse(ref)
	if err != nil {
		if id, err = st.FindByName(ctx, ref); err != nil {
			return nil, err
		}
	}
	logging.FromContext(ctx).Debug("session.load", "id", id)
	return st.Load(ctx, id)
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <session.json>...",
		Short: "Validate session documents and save them in the session store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, closeDB, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			for _, path := range args {
				sess, err := session.Load(path, a.sessionOptions()...)
				if err != nil {
					return err
				}
				id, err := st.Save(ctx, sess)
				if err != nil {
					return err
				}
				logging.FromContext(ctx).Info("session.imported", "path", path, "id", id, "name", sess.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, sess.Name)
			}
			return nil
		},
	}
}

func sessionsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, closeDB, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			list, err := st.List(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\tName\tSlug\tImported\n")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Slug, s.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	c.AddCommand(&cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete stored sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, closeDB, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid session id %q: %w", arg, err)
				}
				if err := st.Delete(ctx, id); err != nil {
					return err
				}
				logging.FromContext(ctx).Info("session.deleted", "id", id)
			}
			return nil
		},
	})
	return c
}
