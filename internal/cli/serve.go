package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/internal/server"
	"github.com/matzehuels/orbital/pkg/cache"
	"github.com/matzehuels/orbital/pkg/pipeline"
	"github.com/matzehuels/orbital/pkg/store"
)

// serveCommand creates the serve command for running the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The serve command starts an HTTP server exposing the layout pipeline:
POST /v1/layout computes a layout from an inline document, POST /v1/layouts
computes and saves one, and GET/DELETE /v1/layouts manage saved layouts.

Layouts and artifacts are cached in Redis when --redis (or ORBITAL_REDIS_URL)
is set, otherwise in the local file cache. Saved layouts live in MongoDB when
--mongo (or ORBITAL_MONGO_URI) is set, otherwise in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the cache (default: $ORBITAL_REDIS_URL)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for the layout store (default: $ORBITAL_MONGO_URI)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache, store, and runner into a server and runs it
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURI string, noCache bool) error {
	if redisURL == "" {
		redisURL = os.Getenv("ORBITAL_REDIS_URL")
	}
	if mongoURI == "" {
		mongoURI = os.Getenv("ORBITAL_MONGO_URI")
	}

	cch, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	srv := server.New(server.Config{
		Addr:   addr,
		Runner: pipeline.NewRunner(cch, nil, c.Logger),
		Store:  st,
		Logger: c.Logger,
	})

	c.Logger.Info("serving layout API", "addr", addr)
	err = srv.ListenAndServe(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := srv.Close(closeCtx); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// serveCache picks the cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		c.Logger.Info("using Redis cache")
		return cache.NewRedisCache(ctx, redisURL)
	}
	return newCache(false)
}

// serveStore picks the layout store backend for the server.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI != "" {
		c.Logger.Info("using MongoDB layout store")
		return store.NewMongoStore(ctx, mongoURI)
	}
	printWarning("No MongoDB configured, layouts are stored in memory and lost on exit")
	return store.NewMemoryStore(), nil
}
