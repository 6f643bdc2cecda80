package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KyleKincer/tableyeah/pkg/cache"
	"github.com/KyleKincer/tableyeah/pkg/config"
	"github.com/KyleKincer/tableyeah/pkg/store"

	"github.com/KyleKincer/tableyeah/internal/server"
)

// serveOptions holds the flags for the serve command.
type serveOptions struct {
	addr string
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP API for computing layouts and storing day sheets.

When redis.addr is configured, computed layouts are cached there and
shared across processes; otherwise caching is disabled. When mongo.uri
is configured, day sheets persist in MongoDB; otherwise they live in
memory and vanish on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe executes the serve command.
func (c *CLI) runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	layoutCache, err := newServerCache(ctx, cfg, c)
	if err != nil {
		return err
	}
	defer layoutCache.Close()

	sheetStore, err := newServerStore(ctx, cfg, c)
	if err != nil {
		return err
	}
	defer sheetStore.Close(context.Background())

	srv := server.New(c.Logger, layoutCache, sheetStore, cfg.Policy(), cfg.Window())
	return srv.ListenAndServe(ctx, addr)
}

// newServerCache connects to Redis when configured, otherwise disables
// caching. A reachable Redis is required once an address is given; a
// typo'd address should fail loudly, not silently degrade.
func newServerCache(ctx context.Context, cfg config.Config, c *CLI) (cache.Cache, error) {
	if cfg.Redis.Addr == "" {
		c.Logger.Debug("no redis configured, layout caching disabled")
		return cache.NewNullCache(), nil
	}
	c.Logger.Info("using redis layout cache", "addr", cfg.Redis.Addr)
	return cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// newServerStore connects to MongoDB when configured, otherwise keeps
// day sheets in memory.
func newServerStore(ctx context.Context, cfg config.Config, c *CLI) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		c.Logger.Debug("no mongo configured, day sheets held in memory")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("using mongo day-sheet store", "database", cfg.Mongo.Database)
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
}
