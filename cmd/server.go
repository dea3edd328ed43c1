package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dsc/core"
	"dsc/handler"
	"dsc/handler/hc"
	"dsc/pkg/logger"
	"dsc/pkg/metrics"
	"dsc/worker/solvency"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	registryFingerprintKey = "dsc_registry_fingerprint"
	registryAssetsKey      = "dsc_registry_assets"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run dsc api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		if database != nil {
			defer database.Close()

			if err := db.Migrate(database); err != nil {
				return err
			}
		}

		events := provideEventStore(database)
		sandbox := provideSandbox(events)

		if properties := providePropertyStore(database); properties != nil {
			if err := checkRegistry(ctx, properties, sandbox.Fingerprint(), sandbox.CollateralTokens()); err != nil {
				return err
			}
		}

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(middleware.RequestID)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, sandbox.Fingerprint()))
		}

		{
			//restful api
			svr := handler.New(sandbox, sandbox, events)
			mux.Mount("/api", svr.HandleRestAPI())
		}

		{
			//metrics
			mux.Handle("/metrics", promhttp.Handler())
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := shutdownOnSignal(ctx, server)
		defer quit()

		var g errgroup.Group
		if interval := cfg.Worker.SolvencyInterval.Std(); interval > 0 {
			w := solvency.New(sandbox, metrics.Engine(), interval)
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			quit()
			_ = g.Wait()
			return err
		}

		return g.Wait()
	},
}

// shutdownOnSignal shut server down gracefully on SIGINT or SIGTERM, the returned context ends with it
func shutdownOnSignal(ctx context.Context, server *http.Server) (context.Context, context.CancelFunc) {
	ctx, quit := context.WithCancel(ctx)

	ctx = signal.WithContextFunc(ctx, func() {
		quit()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("graceful shutdown server failed")
		}
	})

	return ctx, quit
}

// checkRegistry record the collateral registry on first start and refuse to serve a different one later
func checkRegistry(ctx context.Context, store property.Store, fingerprint string, assets []core.Asset) error {
	saved, err := store.Get(ctx, registryFingerprintKey)
	if err != nil {
		return err
	}

	if saved.String() == "" {
		names := make([]string, 0, len(assets))
		for _, asset := range assets {
			names = append(names, asset.String())
		}

		if err := store.Save(ctx, registryAssetsKey, strings.Join(names, ",")); err != nil {
			return err
		}

		return store.Save(ctx, registryFingerprintKey, fingerprint)
	}

	if saved.String() != fingerprint {
		stored, _ := store.Get(ctx, registryAssetsKey)
		return fmt.Errorf("collateral registry changed: stored %s (%s), configured %s", saved, stored, fingerprint)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, default app.port")
}
