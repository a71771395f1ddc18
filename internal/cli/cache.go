package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/motifscan/pkg/cache"
	"github.com/matzehuels/motifscan/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result, symmetry analysis and rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "cache backend %q cannot be cleared", backendName(cfg.Cache))
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", n)
			location, _ := cacheLocation(cfg.Cache)
			printDetail("%s: %s", backendName(cfg.Cache), location)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the configured cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			location, err := cacheLocation(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}
}

func backendName(cfg CacheConfig) string {
	if cfg.Backend == "" {
		return BackendFile
	}
	return cfg.Backend
}

// cacheLocation describes where a backend stores its entries: a directory
// for local backends, a server address otherwise.
func cacheLocation(cfg CacheConfig) (string, error) {
	switch backendName(cfg) {
	case BackendRedis:
		return "redis://" + cfg.Redis.Addr + "/" + fmt.Sprint(cfg.Redis.DB), nil
	case BackendMongo:
		return cfg.Mongo.URI + "/" + cfg.Mongo.Database + "." + cfg.Mongo.Collection, nil
	case BackendNone:
		return "(disabled)", nil
	}
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	if cfg.Backend == BackendBadger {
		return filepath.Join(dir, "badger"), nil
	}
	return dir, nil
}
