package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frontier/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the dataset snapshot cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached dataset snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if c.cfg.Cache.Backend == cache.BackendNone {
				printInfo(out, "Cache is disabled")
				return nil
			}
			cc, err := cache.Open(cmd.Context(), c.cacheOptions())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printInfo(out, "Cache cannot be cleared")
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess(out, "Cleared cached snapshots")
			printDetail(out, "%s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where snapshots are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.cacheLocation())
			return nil
		},
	}
}

// cacheOptions translates the [cache] config section.
func (c *CLI) cacheOptions() cache.Options {
	cc := c.cfg.Cache
	return cache.Options{
		Backend: cc.Backend,
		Dir:     cc.Dir,
		Redis: cache.RedisOptions{
			Addr:     cc.RedisAddr,
			Password: os.Getenv("FRONTIER_REDIS_PASSWORD"),
			DB:       cc.RedisDB,
			Prefix:   cc.Prefix,
		},
	}
}

// cacheLocation describes the configured backend for humans.
func (c *CLI) cacheLocation() string {
	cc := c.cfg.Cache
	switch cc.Backend {
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s/%d (prefix %q)", cc.RedisAddr, cc.RedisDB, cc.Prefix)
	case cache.BackendNone:
		return "disabled"
	}
	return cc.Dir
}
