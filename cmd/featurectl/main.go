// Command featurectl inspects and serves feature evaluations.
//
//	featurectl fetch --source file
//	featurectl telemetry
//	featurectl serve --addr :8080 --refresh 1m
//
// Configuration comes from FEATURE_* environment variables and .env files;
// flags override both.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "featurectl",
		Short:         "Fetch, inspect and serve feature evaluations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.source, "source", "s", "", "evaluation source: http, s3, redis or file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: json or text")
	pf.StringSliceVar(&flags.envFiles, "env-file", nil, "additional dotenv files")

	cmd.AddCommand(fetchCmd(flags))
	cmd.AddCommand(telemetryCmd(flags))
	cmd.AddCommand(serveCmd(flags))

	return cmd
}
