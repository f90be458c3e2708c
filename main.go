package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"movies-api/config"
	"movies-api/database"
	routes "movies-api/internal/app/http"
	"movies-api/internal/infra/moviestore"
	"movies-api/internal/ingest"
	"movies-api/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "movies-api",
		Short:         "Movie catalog query service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
	}
	root.AddCommand(newServeCmd(), newImportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(config.LOG_MODE)
			if err != nil {
				return err
			}
			defer log.Sync()
			logger.SetGlobal(log)

			if err := database.InitDB(config.DB_DRIVER, config.DB_URL); err != nil {
				return err
			}
			log.Info("database ready", "driver", config.DB_DRIVER)

			if config.GIN_MODE != "" {
				gin.SetMode(config.GIN_MODE)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			// ✅ Add CORS middleware BEFORE registering routes
			origins := strings.Split(config.CORS_ORIGIN, ",")
			r.Use(cors.New(cors.Config{
				AllowOrigins:     origins,
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
				ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
				AllowCredentials: config.CORS_ORIGIN != "*",
				MaxAge:           12 * time.Hour,
			}))

			routes.RegisterRoutes(r, log)

			srv := &http.Server{Addr: ":" + config.PORT, Handler: r}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", "port", config.PORT)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
}

func newImportCmd() *cobra.Command {
	var csvPath, dsn string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import movies from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(config.LOG_MODE)
			if err != nil {
				return err
			}
			defer log.Sync()

			if dsn == "" {
				dsn = config.DB_URL
			}
			driver := config.DB_DRIVER
			if cmd.Flags().Changed("db") {
				driver = config.DriverFor(dsn)
			}
			if err := database.InitDB(driver, dsn); err != nil {
				return err
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer f.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			im := ingest.NewImporter(moviestore.New(database.DB, log), log)
			res, err := im.ImportCSV(ctx, f)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies from %s (%d replaced, %d skipped)\n",
				res.Imported, csvPath, res.Replaced, res.Skipped)
			for _, e := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d (id %q): %s\n", e.Line, e.ID, e.Reason)
			}
			if res.ErrorsTruncated {
				fmt.Fprintln(cmd.ErrOrStderr(), "... further row errors omitted")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the CSV file containing movies data")
	cmd.Flags().StringVar(&dsn, "db", "", "database DSN (default: DB_URL)")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}
