package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/redisext/version"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   serviceName,
		Short: "Redis extension host and key-value CLI",
		Long: `redisext attaches a Redis client to a host application using the
<PREFIX>_URL setting (REDIS_URL by default) and either serves a key-value
HTTP API or runs a single command against the server.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "path to config.yml (default: search standard locations)")
	pf.StringVar(&flags.envFile, "env-file", "", "path to a .env file (default: search standard locations)")
	pf.StringVarP(&flags.url, "url", "u", "", "Redis URL, overrides the <PREFIX>_URL setting")
	pf.StringVarP(&flags.prefix, "prefix", "p", "", "configuration key prefix (default REDIS)")
	pf.BoolVar(&flags.legacy, "legacy", false, "use the legacy RESP2 provider instead of the strict RESP3 one")
	pf.BoolVar(&flags.pool, "pool", false, "build the client from an explicit connection pool")

	root.AddCommand(
		newServeCmd(flags),
		newPingCmd(flags),
		newGetCmd(flags),
		newSetCmd(flags),
		newDelCmd(flags),
	)
	return root
}
