package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/kbukum/redisext/bootstrap"
	"github.com/kbukum/redisext/redis"
)

// runWithExtension attaches an extension, starts the app and runs fn.
func runWithExtension(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, ext *redis.Extension) error) error {
	app, ext, err := newApp(flags, bootstrap.WithSummaryOutput(io.Discard))
	if err != nil {
		return err
	}
	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		return fn(ctx, ext)
	})
}

func newPingCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithExtension(cmd, flags, func(ctx context.Context, ext *redis.Extension) error {
				pong, err := ext.Ping(ctx).Result()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pong)
				return nil
			})
		},
	}
}

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print the value stored at key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithExtension(cmd, flags, func(ctx context.Context, ext *redis.Extension) error {
				value, err := ext.GetItem(ctx, args[0])
				if stderrors.Is(err, goredis.Nil) {
					return fmt.Errorf("key %q not found", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}

func newSetCmd(flags *globalFlags) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Store value at key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl < 0 {
				return fmt.Errorf("--ttl must not be negative")
			}
			return runWithExtension(cmd, flags, func(ctx context.Context, ext *redis.Extension) error {
				if err := ext.Set(ctx, args[0], args[1], ttl).Err(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "expire the key after this duration (0 keeps it forever)")
	return cmd
}

func newDelCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "del [key...]",
		Short: "Delete keys and print how many existed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithExtension(cmd, flags, func(ctx context.Context, ext *redis.Extension) error {
				n, err := ext.Del(ctx, args...).Result()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}
