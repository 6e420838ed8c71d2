package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmis/hospitalcore/internal/config"
	"github.com/hmis/hospitalcore/internal/domain/incidence"
	"github.com/hmis/hospitalcore/internal/domain/morbidity"
	"github.com/hmis/hospitalcore/internal/domain/patientsearch"
	"github.com/hmis/hospitalcore/internal/domain/taxonomy"
	"github.com/hmis/hospitalcore/internal/domain/visit"
	"github.com/hmis/hospitalcore/internal/platform/db"
	"github.com/hmis/hospitalcore/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospitalcore-server",
		Short: "Hospital clinical-data query and reporting server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, cfg.MigrationsDir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, cfg.MigrationsDir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	cmd.AddCommand(statusCmd)

	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the diagnosis taxonomy from XML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnosesPath, _ := cmd.Flags().GetString("diagnoses")
			mappingsPath, _ := cmd.Flags().GetString("mappings")
			synonymsPath, _ := cmd.Flags().GetString("synonyms")
			if diagnosesPath == "" || mappingsPath == "" || synonymsPath == "" {
				return fmt.Errorf("--diagnoses, --mappings and --synonyms are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Env)

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			diagnoses, err := os.Open(diagnosesPath)
			if err != nil {
				return err
			}
			defer diagnoses.Close()
			mappings, err := os.Open(mappingsPath)
			if err != nil {
				return err
			}
			defer mappings.Close()
			synonyms, err := os.Open(synonymsPath)
			if err != nil {
				return err
			}
			defer synonyms.Close()

			store := taxonomy.NewRepoPG(pool)
			importer := taxonomy.NewImporter(store, cfg.ImportBatchSize, logger)
			svc := taxonomy.NewService(store, importer)

			processed, err := svc.ImportStreams(ctx, diagnoses, mappings, synonyms)
			if err != nil {
				return fmt.Errorf("import failed after %d record(s): %w", processed, err)
			}

			fmt.Printf("Imported %d record(s) successfully.\n", processed)
			return nil
		},
	}
	cmd.Flags().String("diagnoses", "", "Path to the diagnoses XML file")
	cmd.Flags().String("mappings", "", "Path to the concept mappings XML file")
	cmd.Flags().String("synonyms", "", "Path to the synonyms XML file")
	return cmd
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg.Env)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := buildServer(cfg, logger, pool)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	return nil
}

// buildServer wires middleware and domain handlers onto a fresh echo instance.
func buildServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")

	taxonomyStore := taxonomy.NewRepoPG(pool)
	taxonomyImporter := taxonomy.NewImporter(taxonomyStore, cfg.ImportBatchSize, logger)
	taxonomySvc := taxonomy.NewService(taxonomyStore, taxonomyImporter)
	taxonomy.NewHandler(taxonomySvc).RegisterRoutes(apiV1)

	searchRepo := patientsearch.NewRepoPG(pool)
	searchSvc := patientsearch.NewService(searchRepo)
	patientsearch.NewHandler(searchSvc).RegisterRoutes(apiV1)

	registry := incidence.NewRegistry()
	incidenceRepo := incidence.NewRepoPG(pool)
	counter := incidence.NewCounter(registry, incidenceRepo)
	incidence.NewHandler(counter, registry).RegisterRoutes(apiV1)

	morbidityRepo := morbidity.NewRepoPG(pool)
	morbiditySvc := morbidity.NewService(morbidityRepo)
	morbidity.NewHandler(morbiditySvc).RegisterRoutes(apiV1)

	visitRepo := visit.NewRepoPG(pool)
	visitSvc := visit.NewService(visitRepo)
	visit.NewHandler(visitSvc).RegisterRoutes(apiV1)

	return e
}
