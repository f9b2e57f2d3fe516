package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/redisext/api"
	"github.com/kbukum/redisext/bootstrap"
	"github.com/kbukum/redisext/logger"
	"github.com/kbukum/redisext/observability"
	"github.com/kbukum/redisext/redis"
	"github.com/kbukum/redisext/server"
	"github.com/kbukum/redisext/server/middleware"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the key-value HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, ext, err := newApp(flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				app.Cfg.Server.Port = port
			}
			srv, err := buildServer(app, ext)
			if err != nil {
				return err
			}
			if err := registerServer(app, srv); err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP listen port, overrides server.port")
	return cmd
}

// buildServer wires the HTTP API and, when enabled, OTLP metrics for both
// requests and the Redis connection pool.
func buildServer(app *bootstrap.App[*Config], ext *redis.Extension) (*server.Server, error) {
	cfg := app.Cfg

	var extra []middleware.Middleware
	if cfg.Metrics.Enabled {
		if err := app.RegisterComponent(observability.NewMeterComponent(cfg.Metrics)); err != nil {
			return nil, err
		}
		meter := observability.Meter(serviceName)
		metrics, err := observability.NewMetrics(meter)
		if err != nil {
			return nil, err
		}
		if _, err := redis.RegisterMetrics(meter, ext); err != nil {
			return nil, err
		}
		extra = append(extra, middleware.Metrics(metrics, api.Route))
		app.Logger.Info("OTLP metrics enabled", logger.Fields("endpoint", cfg.Metrics.Endpoint))
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyMiddleware(extra...)
	srv.RegisterDefaultEndpoints(app.Name, app.Version, app.Components.HealthAll)
	api.NewHandler(ext, app.Logger.WithComponent("api")).Register(srv.GinEngine())
	return srv, nil
}

// registerServer adds srv to the app lifecycle and logs the bound address
// once the app is ready.
func registerServer(app *bootstrap.App[*Config], srv *server.Server) error {
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	app.OnReady(func(context.Context) error {
		app.Logger.Info("Serving key-value API", logger.Fields("addr", srv.Addr()))
		return nil
	})
	return nil
}
