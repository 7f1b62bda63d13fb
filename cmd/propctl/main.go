package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:           "propctl",
		Short:         "Score, rank and summarise property listings from a JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.tablePath, "table", "", "YAML file overriding scoring constants")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(rankCmd(&opts))
	rootCmd.AddCommand(analyticsCmd(&opts))
	rootCmd.AddCommand(optionsCmd(&opts))
	rootCmd.AddCommand(seedCmd())

	return rootCmd
}

func rankCmd(opts *globalOptions) *cobra.Command {
	var (
		top     int
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "rank [listings.json]",
		Short: "Rank listings by AI score, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], *opts, filters.build(cmd), top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "only print the best N listings (0 prints all)")
	filters.register(cmd)
	return cmd
}

func analyticsCmd(opts *globalOptions) *cobra.Command {
	var (
		filters    filterFlags
		affordable float64
	)

	cmd := &cobra.Command{
		Use:   "analytics [listings.json]",
		Short: "Print the market summary and overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalytics(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], *opts, filters.build(cmd), affordable)
		},
	}

	cmd.Flags().Float64Var(&affordable, "affordable-price", 300000, "price under which a listing counts as affordable")
	filters.register(cmd)
	return cmd
}

func optionsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options [listings.json]",
		Short: "List the distinct zip codes and property types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptions(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], *opts)
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		uri        string
		db         string
		collection string
	)

	cmd := &cobra.Command{
		Use:   "seed [listings.json]",
		Short: "Upsert listings into the MongoDB collection used by PROPERTY_SOURCE=mongodb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout(), args[0], uri, db, collection)
		},
	}

	cmd.Flags().StringVar(&uri, "mongo-uri", os.Getenv("MONGODB_URI"), "MongoDB connection string")
	cmd.Flags().StringVar(&db, "db", envOr("MONGODB_DB_NAME", "realty"), "database name")
	cmd.Flags().StringVar(&collection, "collection", envOr("MONGODB_COLLECTION", "properties"), "collection name")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
