package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"kolam/app"
	"kolam/config"
	"kolam/design"
	"kolam/log"
	"kolam/navigator"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	version        = "0.1.0"
	apiFlag        string
	noNavigateFlag bool
	rootCmd        = &cobra.Command{
		Use:   "kolam",
		Short: "Kolam - Browse and generate kolam designs from your terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()

			opts := app.Options{}
			if noNavigateFlag {
				opts.Navigator = navigator.Noop{}
				cfg.NextStepURL = ""
			}

			return app.Run(ctx, cfg, opts)
		},
	}

	fetchConcurrency int
	fetchCmd         = &cobra.Command{
		Use:   "fetch TOKEN...",
		Short: "Fetch the designs of one or more grid tokens and print them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()
			client, err := design.NewClient(design.ClientOptions{
				BaseURL:           cfg.APIBaseURL,
				Timeout:           cfg.FetchTimeout(),
				CacheTTL:          cfg.CacheTTL(),
				RequestsPerSecond: cfg.RequestsPerSecond,
			})
			if err != nil {
				return err
			}
			orch := design.NewOrchestrator(design.OrchestratorOptions{
				Fetcher:         client,
				Suggestions:     cfg.Suggestions,
				PlaceholderBase: cfg.PlaceholderBaseURL,
			})

			results := make([]design.Result, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(fetchConcurrency, 1))
			for i, token := range args {
				req := orch.PlanGrid(token)
				g.Go(func() error {
					results[i] = orch.Run(ctx, req)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(errOut, "Failed to fetch images for %s: %v\n", res.Prompt, res.Err)
				}
				for _, d := range res.Designs {
					fmt.Fprintf(out, "%s\t%s\n", d.Title, d.Image)
				}
			}
			return nil
		},
	}

	suggestionsCmd = &cobra.Command{
		Use:   "suggestions",
		Short: "Print the grid tokens offered in the prompt dropdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()
			for _, s := range cfg.Suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", s.Value, s.Label)
			}
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := loadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Log: %s\n", log.Path())

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kolam",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kolam version %s\n", version)
		},
	}
)

// loadConfig reads the config and applies the persistent flags.
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if apiFlag != "" {
		cfg.APIBaseURL = apiFlag
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "",
		"Image service base URL (overrides api_base_url from the config)")
	rootCmd.Flags().BoolVar(&noNavigateFlag, "no-navigate", false,
		"Do not open the next step page after a design is generated")
	fetchCmd.Flags().IntVarP(&fetchConcurrency, "concurrency", "c", 4,
		"Maximum number of grid tokens fetched at once")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(suggestionsCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
