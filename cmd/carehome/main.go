package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carehome/carehome/internal/config"
	"github.com/carehome/carehome/internal/domain/audit"
	"github.com/carehome/carehome/internal/domain/medication"
	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/internal/platform/reporting"
	"github.com/carehome/carehome/internal/platform/store"
	"github.com/carehome/carehome/internal/registry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carehome",
		Short: "Care-home rostering, occupancy and medication workflow",
	}

	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app wires the registry, snapshot store and workflow services for one
// process run.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	reg   *registry.Registry
	store store.Store
	pool  *pgxpool.Pool

	staffSvc *staff.Service
	occSvc   *occupancy.Service
	medSvc   *medication.Service
	auditSvc *audit.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	a := &app{cfg: cfg, log: log, reg: registry.New()}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.store = store.NewPGStore(pool, log)
	default:
		a.store = store.NewFileStore(cfg.DataFile, log)
	}

	snap, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	a.reg.Restore(snap)

	a.auditSvc = audit.NewService(a.reg.Audit, log)
	a.staffSvc = staff.NewService(a.reg.Staff, a.auditSvc)
	a.occSvc = occupancy.NewService(a.reg.Occupancy, a.auditSvc)
	a.medSvc = medication.NewService(a.reg.Medication, a.reg.Occupancy, a.auditSvc)

	return a, nil
}

// save persists the full registry state. Failures here are fatal to the
// caller; there is no safe way to continue after a failed save.
func (a *app) save(ctx context.Context) error {
	return a.store.Save(ctx, a.reg.Snapshot())
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// seedManager makes sure a first run has a manager to act as. Mirrors the
// seeded admin of the interactive console.
func (a *app) seedManager(ctx context.Context) (*staff.Staff, error) {
	members, err := a.reg.Staff.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.Role == auth.RoleManager {
			return m, nil
		}
	}

	mgr := staff.New("M-1", "Alice Manager", auth.RoleManager)
	hash, err := auth.HashPassword("admin")
	if err != nil {
		return nil, err
	}
	mgr.PasswordHash = hash
	if err := a.reg.Staff.Create(ctx, mgr); err != nil {
		return nil, err
	}
	a.log.Info().Str("staff_id", mgr.ID).Msg("seeded default manager")
	return mgr, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres snapshot schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Create the snapshot table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrate")
			}
			log := newLogger(cfg)

			pool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.Migrate(ctx, pool); err != nil {
				return err
			}
			log.Info().Msg("snapshot schema ready")
			return nil
		},
	}

	cmd.AddCommand(upCmd)
	return cmd
}

func reportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a roster/occupancy workbook from the saved state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if out == "" {
				out = a.cfg.ReportFile
			}
			if err := reporting.WriteWorkbook(out, a.reg); err != nil {
				return err
			}
			a.log.Info().Str("path", out).Msg("report written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to REPORT_FILE)")
	return cmd
}
