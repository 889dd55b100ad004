package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/notify"
	"github.com/Punitjadhav07/Hack-build/internal/store"
	"github.com/Punitjadhav07/Hack-build/internal/views"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo events, feedback and notifications",
		Long: `Load the demo events, feedback and notifications when the store has
no events. A store that already has events is left unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				seeded, err := a.engine.SeedIfEmpty(ctx)
				if err != nil {
					return err
				}
				return a.out.Render(map[string]bool{"seeded": seeded}, func(w io.Writer) {
					if seeded {
						fmt.Fprintln(w, "Seeded demo data.")
					} else {
						fmt.Fprintln(w, "Store already has events; nothing seeded.")
					}
				})
			})
		},
	}
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite a record stored by an older build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				changed, err := a.engine.MigrateStore(ctx)
				if err != nil {
					return err
				}
				return a.out.Render(map[string]bool{"changed": changed}, func(w io.Writer) {
					if changed {
						fmt.Fprintln(w, "Store migrated.")
					} else {
						fmt.Fprintln(w, "Store is up to date.")
					}
				})
			})
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the store record",
		Long: `Print the whole store record, or one collection of it.

Collections: stats, events, approvals, users, files, notifications,
registrations, reports, feedback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var col model.Collection
			if collection != "" {
				c, ok := model.ParseCollection(collection)
				if !ok {
					return errdef.NewBadRequest("unknown collection %q", collection)
				}
				col = c
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec := a.engine.Read(ctx)
				var data any = rec
				if col != "" {
					data = rec.Part(col)
				}
				if a.out.Format == "json" {
					return a.out.Success(data)
				}
				enc := json.NewEncoder(a.out.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			})
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "print only this collection")
	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	var recompute bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		Long: `Show the dashboard counters with the next events and the latest
notifications. Counters are patched by individual commands and can drift;
--recompute rebuilds them from the lists first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if recompute {
					if _, err := a.engine.RecomputeStats(ctx); err != nil {
						return err
					}
				}
				now := a.now()
				overview := views.Overview(a.engine.Read(ctx), now)
				return a.out.Render(overview, func(w io.Writer) {
					s := overview.Stats
					fmt.Fprintf(w, "Events:            %d\n", s.TotalEvents)
					fmt.Fprintf(w, "Users:             %d\n", s.TotalUsers)
					fmt.Fprintf(w, "Registrations:     %d\n", s.Registrations)
					fmt.Fprintf(w, "Pending approvals: %d\n", s.PendingApprovals)
					if len(overview.Upcoming) > 0 {
						fmt.Fprintln(w, "\nUpcoming:")
						for _, item := range overview.Upcoming {
							fmt.Fprintf(w, "  %s  %s\n", item.Date, item.Title)
						}
					}
					if len(overview.Notifications) > 0 {
						fmt.Fprintln(w, "\nNotifications:")
						for _, n := range overview.Notifications {
							fmt.Fprintf(w, "  %s (%s)\n", notificationLine(n), views.NotificationAge(n, now))
						}
					}
				})
			})
		},
	}

	cmd.Flags().BoolVar(&recompute, "recompute", false, "rebuild counters from the lists first")
	return cmd
}

// historyEntry is one past record as listed by the history command.
type historyEntry struct {
	StoreRevision  int64       `json:"storeRevision"`
	RecordRevision int64       `json:"recordRevision"`
	WrittenAt      time.Time   `json:"writtenAt"`
	Stats          model.Stats `json:"stats"`
	Events         int         `json:"events"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		limit int
		keep  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past versions of the store record",
		Long: `List past versions of the store record, newest first.

With --keep N, history older than the newest N writes is deleted first
(SQLite backend only).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if cmd.Flags().Changed("keep") {
					st, ok := a.kv.(*store.Store)
					if !ok {
						return errdef.NewBadRequest("history: --keep needs the sqlite backend")
					}
					removed, err := st.PruneHistory(ctx, model.StoreKey, keep)
					if err != nil {
						return err
					}
					a.out.VerboseLog("pruned %d history entries", removed)
				}

				snapshots, err := a.engine.History(ctx, limit)
				if err != nil {
					return err
				}
				entries := make([]historyEntry, 0, len(snapshots))
				for _, s := range snapshots {
					entries = append(entries, historyEntry{
						StoreRevision:  s.StoreRevision,
						RecordRevision: s.Record.Revision,
						WrittenAt:      s.WrittenAt,
						Stats:          s.Record.Stats,
						Events:         len(s.Record.Events),
					})
				}

				now := a.now()
				return a.out.Render(entries, func(w io.Writer) {
					if len(entries) == 0 {
						fmt.Fprintln(w, "No history.")
						return
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "REV\tRECORD\tWRITTEN\tEVENTS\tUSERS")
					for _, e := range entries {
						fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\n",
							e.StoreRevision, e.RecordRevision, humanize.RelTime(e.WrittenAt, now, "ago", "from now"),
							e.Events, e.Stats.TotalUsers)
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to list (0 for all)")
	cmd.Flags().IntVar(&keep, "keep", 0, "prune history to the newest N writes")
	return cmd
}

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Interval time.Duration
	Count    int // stop after this many changes; 0 runs until interrupted
}

// changeLine is one change printed by watch.
type changeLine struct {
	Revision    int64              `json:"revision"`
	Collections []model.Collection `json:"collections"`
	Stats       model.Stats        `json:"stats"`
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print store changes as they happen",
		Long: `Poll the store and print one line per change, including changes made
by other processes sharing the same database.

Example:
  eventra watch --interval 500ms
  eventra watch --count 1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				return runWatch(ctx, opts, a)
			})
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", time.Second, "poll interval")
	cmd.Flags().IntVar(&opts.Count, "count", 0, "exit after this many changes (0 = run until interrupted)")
	return cmd
}

func runWatch(parent context.Context, opts *WatchOptions, a *app) error {
	if opts.Interval <= 0 {
		return errdef.NewBadRequest("watch: interval must be positive")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("received signal, stopping watch", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	sub := a.engine.Subscribe()
	defer sub.Close()

	a.engine.Sync(ctx)
	a.out.VerboseLog("watching store (interval %s)", opts.Interval)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	seen := 0
	for {
		for {
			c, ok := sub.TryNext()
			if !ok {
				break
			}
			if err := printChange(a.out, c); err != nil {
				return err
			}
			seen++
			if opts.Count > 0 && seen >= opts.Count {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.engine.Sync(ctx)
		}
	}
}

func printChange(out *OutputFormatter, c notify.Change) error {
	line := changeLine{Revision: c.Revision, Collections: c.Collections, Stats: c.Record.Stats}
	if line.Collections == nil {
		line.Collections = []model.Collection{}
	}
	return out.Render(line, func(w io.Writer) {
		fmt.Fprintf(w, "revision %d: %v\n", line.Revision, line.Collections)
	})
}
