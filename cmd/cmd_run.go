package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/internal/config"
	"github.com/gaze-network/presale-ledger/modules/presale"
	"github.com/gaze-network/presale-ledger/pkg/automaxprocs"
	"github.com/gaze-network/presale-ledger/pkg/errorhandler"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/gaze-network/presale-ledger/pkg/middleware/requestcontext"
	"github.com/gaze-network/presale-ledger/pkg/middleware/requestlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"golang.org/x/sync/errgroup"
)

func NewRunCommand() *cobra.Command {
	// Create command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start presale ledger service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.Int("port", 0, "Port of the HTTP server. Overrides `http_server.port`")
	flags.String("metrics-path", "", "Serve prometheus metrics on this path. E.g. `/metrics`")

	// Bind flags to configuration
	config.BindPFlag("http_server.port", flags.Lookup("port"))
	config.BindPFlag("http_server.metrics_path", flags.Lookup("metrics-path"))

	return runCmd
}

const (
	shutdownTimeout = 60 * time.Second
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New()
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "Presale Ledger",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithClientIP(conf.HTTPServer.RequestIP),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", errors.Newf("panic: %v", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		// Prometheus metrics
		if path := conf.HTTPServer.MetricsPath; path != "" {
			app.Get(path, func(c *fiber.Ctx) error {
				fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.Context())
				return nil
			})
		}

		return app, nil
	})

	// Register and start the presale module
	do.Provide(injector, presale.New)
	if _, err := do.Invoke[*presale.Module](injector); err != nil {
		return errors.Wrap(err, "can't init presale module")
	}

	// Run API server
	httpServer := do.MustInvoke[*fiber.App](injector)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			return errors.Wrap(err, "error during running HTTP server")
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()

		logger.InfoContext(ctx, "Stopping HTTP server...")
		if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return errors.Wrap(err, "error during shutting down HTTP server")
		}
		return nil
	})

	logger.InfoContext(ctx, "Presale ledger started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	if err := group.Wait(); err != nil {
		logger.ErrorContext(ctx, "Something went wrong, HTTP server stopped with error", err)
	}
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return nil
}
