package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/frontier/pkg/api"
	"github.com/matzehuels/frontier/pkg/observability"
	"github.com/matzehuels/frontier/pkg/search"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		timeout  time.Duration
		frontier string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve both engines over HTTP",
		Long: `Load the dataset once and answer queries over HTTP until interrupted.

  GET  /healthz
  GET  /v1/people?name=NAME
  GET  /v1/path?source=NAME&target=NAME   (or source_id, target_id)
  POST /v1/tictactoe/move                 {"board": "XX_/OO_/___"}
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("request-timeout") {
				timeout = c.cfg.Server.RequestTimeout.Duration
			}
			if !cmd.Flags().Changed("frontier") {
				frontier = c.cfg.Search.Frontier
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetSearchHooks(hooks)
			observability.SetDatasetHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)

			r := c.newRunner(ctx)
			defer r.Close()
			ds, _, err := c.loadDataset(ctx, r, false)
			if err != nil {
				return err
			}

			srv := api.NewServer(r, ds, api.Options{
				RequestTimeout: timeout,
				Frontier:       search.Kind(frontier),
				Gatherer:       reg,
				Logger:         c.Logger,
			})
			return c.listenAndServe(ctx, addr, srv.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "request-timeout", api.DefaultRequestTimeout, "per-request deadline")
	cmd.Flags().StringVar(&frontier, "frontier", "queue", "frontier: queue or stack")
	return cmd
}

// listenAndServe runs the server until ctx is cancelled, then shuts it down
// gracefully.
func (c *CLI) listenAndServe(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Logger.Info("serving", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
