package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/valorlabs/valor/internal/clients/eodhd"
	"github.com/valorlabs/valor/internal/clients/yahoo"
	"github.com/valorlabs/valor/internal/common"
	"github.com/valorlabs/valor/internal/interfaces"
	"github.com/valorlabs/valor/internal/models"
	"github.com/valorlabs/valor/internal/services/analyze"
	"github.com/valorlabs/valor/internal/services/quote"
	"github.com/valorlabs/valor/internal/services/report"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "valor",
		Short: "Valor - value investor valuation model",
		Long: `Valor analyzes one stock ticker per run: it fetches price,
fundamentals, history and news from a market data vendor, applies a set
of independent intrinsic-value models, scores news sentiment, and prints
a blended recommendation with margin of safety.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().String("config", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable ANSI styling in the report")

	return rootCmd
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze TICKER",
		Short: "Run the compact valuation report for a ticker",
		Long: `Run the single-ticker valuation pipeline and print the compact
report. Example: valor analyze AAPL --news-items=12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newsItems, _ := cmd.Flags().GetInt("news-items")
			years, _ := cmd.Flags().GetInt("years")
			opts := models.AnalyzeOptions{NewsItems: newsItems, Years: years}
			return runReport(cmd, args[0], opts, report.DepthAnalyze)
		},
	}

	cmd.Flags().Int("news-items", 12, "Number of headlines to score for sentiment (3-40)")
	cmd.Flags().Int("years", 5, "History span in years for trend statistics")

	return cmd
}

// newDashboardCmd creates the dashboard command
func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard TICKER",
		Short: "Run the full value-investing dashboard for a ticker",
		Long: `Run the pipeline with the mental-model scorecard, checklist and
narrative-risk scan. Example: valor dashboard AAPL --years=10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newsItems, _ := cmd.Flags().GetInt("news-items")
			years, _ := cmd.Flags().GetInt("years")
			opts := models.AnalyzeOptions{NewsItems: newsItems, Years: years, Scorecard: true}
			return runReport(cmd, args[0], opts, report.DepthDashboard)
		},
	}

	cmd.Flags().Int("news-items", 18, "Number of headlines to score for sentiment (3-40)")
	cmd.Flags().Int("years", 10, "History span in years for trend statistics")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			common.LoadVersionFromFile()
			fmt.Println("valor", common.GetFullVersion())
		},
	}
}

// runReport wires the clients and services, runs the pipeline and prints
// the report to stdout. Insufficient data is a report outcome, not an
// error exit.
func runReport(cmd *cobra.Command, ticker string, opts models.AnalyzeOptions, depth report.Depth) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return fmt.Errorf("ticker is required")
	}

	// .env before config so the API key env override sees it
	_ = godotenv.Load()

	configPath, _ := cmd.Flags().GetString("config")
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return err
	}

	level := config.Logging.Level
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger := common.NewLogger(level)

	common.PrintBanner(config, logger)

	if config.Clients.EODHD.APIKey == "" {
		return fmt.Errorf("EODHD API key not configured (set EODHD_API_KEY or clients.eodhd.api_key)")
	}

	primary := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		eodhd.WithLogger(logger),
	)

	var fallback interfaces.QuoteFallbackClient
	if config.Clients.Yahoo.Enabled {
		fallback = yahoo.NewClient(logger)
	}

	quotes := quote.NewService(primary, fallback, logger)
	service := analyze.NewService(quotes, primary, config.Valuation.ModelWeights, logger)

	result, err := service.Analyze(cmd.Context(), ticker, opts)
	if err != nil {
		return err
	}

	plain, _ := cmd.Flags().GetBool("plain")
	if !plain && !isatty.IsTerminal(os.Stdout.Fd()) {
		plain = true
	}

	formatter := report.NewFormatter(plain)
	fmt.Fprint(os.Stdout, formatter.Format(result, depth))
	return nil
}
