package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	kollektiv "github.com/Skaland01/Kollektiv"
	"github.com/Skaland01/Kollektiv/internal/hooks"
	"github.com/Skaland01/Kollektiv/internal/logging"
	"github.com/Skaland01/Kollektiv/internal/metrics"
	"github.com/Skaland01/Kollektiv/source"
	"github.com/Skaland01/Kollektiv/store"
	"github.com/Skaland01/Kollektiv/types"
)

// app is everything one command invocation needs.
type app struct {
	cfg       kollektiv.Config
	engine    *kollektiv.Engine
	source    types.HouseholdSource
	household *source.Household
	logger    *logging.ZapLogger

	handle      *store.Handle
	registry    *prometheus.Registry
	metricsFile string
}

// wireApp builds the engine for one command: config, logger, household,
// optional metrics and store, then restores the last stored snapshot.
func wireApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := kollektiv.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := kollektiv.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.storeURL != "" {
		cfg.Store.URL = flags.storeURL
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}

	zl, err := logging.NewZapLoggerTo(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	logger := logging.NewZap(zl)

	src, household, err := source.LoadFile(flags.household)
	if err != nil {
		return nil, err
	}
	if household.Collective != "" && cfg.CollectiveID == kollektiv.DefaultConfig().CollectiveID {
		cfg.CollectiveID = household.Collective
	}

	a := &app{
		cfg:         cfg,
		source:      src,
		household:   household,
		logger:      logger,
		metricsFile: flags.metricsFile,
	}

	clock, err := parseToday(flags.today, cfg.Location())
	if err != nil {
		return nil, err
	}

	opts := []kollektiv.Option{
		kollektiv.WithLogger(logger),
		kollektiv.WithClock(clock),
	}

	if flags.metricsFile != "" {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, kollektiv.WithMetrics(metrics.NewPrometheus(a.registry, "kollektiv")))
	}

	var rec *store.Recorder
	if cfg.Store.URL != "" {
		a.handle, err = store.Open(ctx, cfg.Store.URL, store.OpenOptions{
			Bucket:    cfg.Store.Bucket,
			KeyPrefix: cfg.Store.KeyPrefix,
			Table:     cfg.Store.Table,
			Timeout:   cfg.Store.OperationTimeout,
		})
		if err != nil {
			return nil, err
		}

		rec, err = store.NewRecorder(a.handle, cfg.CollectiveID, cfg.Store.OperationTimeout, logger)
		if err != nil {
			_ = a.close()
			return nil, err
		}
		opts = append(opts, kollektiv.WithHooks(hooks.Merge(auditHooks(logger), rec.Hooks())))
	} else {
		opts = append(opts, kollektiv.WithHooks(auditHooks(logger)))
	}

	a.engine, err = kollektiv.NewEngine(&a.cfg, opts...)
	if err != nil {
		_ = a.close()
		return nil, err
	}

	if rec != nil {
		if err := a.restore(ctx, rec); err != nil {
			_ = a.close()
			return nil, err
		}
	}

	return a, nil
}

// restore loads the collective's last snapshot into the engine.
//
// A snapshot that references rooms no longer in the household is replaced
// by empty ledgers at the stored version, with a warning, so editing the
// household file never locks the CLI out.
func (a *app) restore(ctx context.Context, rec *store.Recorder) error {
	snap, err := rec.Load(ctx)
	if errors.Is(err, types.ErrSnapshotNotFound) {
		a.logger.Debug("no stored snapshot", "collectiveID", a.cfg.CollectiveID)
		return nil
	}
	if err != nil {
		return err
	}

	rooms, err := a.source.ListRooms(ctx)
	if err != nil {
		return err
	}

	err = a.engine.Restore(ctx, snap, rooms)
	if !errors.Is(err, types.ErrUnknownRoom) {
		return err
	}

	a.logger.Warn("stored snapshot does not match the household, starting fresh",
		"collectiveID", a.cfg.CollectiveID,
		"version", snap.Version,
		"error", err)

	// Keep the stored version so the next save is not rejected as stale, and
	// keep the load history: it is keyed by member, not by room.
	return a.engine.Restore(ctx, types.Snapshot{
		CollectiveID: snap.CollectiveID,
		Version:      snap.Version,
		Load:         snap.Load,
	}, rooms)
}

// roomsAndMembers returns the current household.
func (a *app) roomsAndMembers(ctx context.Context) ([]types.Room, []types.Member, error) {
	rooms, err := a.source.ListRooms(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}
	members, err := a.source.ListMembers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}

	return rooms, members, nil
}

// close writes the metrics file and releases the store connection.
func (a *app) close() error {
	var errs []error

	if a.registry != nil && a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics file: %w", err))
		}
	}

	if a.handle != nil {
		if err := a.handle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	_ = a.logger.Sync()

	return errors.Join(errs...)
}

// auditHooks logs every assignment change at debug level.
func auditHooks(logger types.Logger) *types.Hooks {
	return &types.Hooks{
		OnAssignmentsChanged: func(_ context.Context, reason string, a types.Assignments) error {
			logger.Debug("assignments changed",
				"reason", reason,
				"members", len(a),
				"rooms", a.TotalRooms())
			return nil
		},
		OnScheduleGenerated: func(_ context.Context, entries []types.WeekEntry) error {
			if len(entries) > 0 {
				logger.Debug("schedule ready",
					"from", entries[0].Key.String(),
					"weeks", len(entries))
			}
			return nil
		},
	}
}

// parseToday returns a clock pinned to the given YYYY-MM-DD date, or time.Now
// when the date is empty.
func parseToday(value string, loc *time.Location) (func() time.Time, error) {
	if value == "" {
		return time.Now, nil
	}

	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", value)
	}

	return func() time.Time { return day }, nil
}
