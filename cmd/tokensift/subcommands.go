package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tokensift/tokensift/internal/analyze"
	cfgpkg "github.com/tokensift/tokensift/internal/config"
	"github.com/tokensift/tokensift/internal/market"
	"github.com/tokensift/tokensift/internal/market/cmc"
	"github.com/tokensift/tokensift/internal/market/filesrc"
	"github.com/tokensift/tokensift/internal/report"
	"github.com/tokensift/tokensift/internal/scan"
	"github.com/tokensift/tokensift/internal/store"
)

// Resolve the registry
func resolveRegistry(cmd *cobra.Command) (*market.Registry, cfgpkg.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(cfgPath)
	if err != nil {
		return nil, cfgpkg.Config{}, err
	}
	reg := market.NewRegistry()
	reg.Register(cmc.New(cfg))
	if offline, _ := cmd.Flags().GetString("offline-file"); offline != "" {
		reg.Register(filesrc.New(offline))
	}
	return reg, cfg, nil
}

// Scan listings for quality tokens
func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan market listings for quality tokens on a chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, _ := cmd.Flags().GetString("chain")
			risk, _ := cmd.Flags().GetString("risk")
			limit, _ := cmd.Flags().GetInt("limit")
			top, _ := cmd.Flags().GetInt("top")
			source, _ := cmd.Flags().GetString("source")
			offline, _ := cmd.Flags().GetString("offline-file")
			noReport, _ := cmd.Flags().GetBool("no-report")
			exportFmt, _ := cmd.Flags().GetString("export")
			outPath, _ := cmd.Flags().GetString("out")

			reg, cfg, err := resolveRegistry(cmd)
			if err != nil {
				return err
			}
			if chain == "" {
				chain = cfg.Defaults.Chain
			}
			if risk == "" {
				risk = cfg.Defaults.Risk
			}
			if limit == 0 {
				limit = cfg.API.Limit
			}
			if top == 0 {
				top = cfg.Defaults.Top
			}
			if source == "" {
				source = cfg.Defaults.Source
			}
			if offline != "" {
				source = "file"
			}
			tier, err := analyze.ParseTier(risk)
			if err != nil {
				return err
			}

			src, err := reg.Get(source)
			if err != nil {
				return err
			}
			if cfg.CacheTTL() > 0 {
				src = market.NewCachedSource(src, cfg.CacheTTL())
			}

			var history *store.Store
			if cfg.HistoryDB != "" {
				history, err = store.New(cfg.HistoryDB)
				if err != nil {
					log.Warn().Err(err).Str("path", cfg.HistoryDB).Msg("History store unavailable")
					history = nil
				} else {
					defer history.Close()
				}
			}

			tiers := map[analyze.Tier]analyze.Thresholds{
				analyze.TierLow:    cfg.TierThresholds(analyze.TierLow),
				analyze.TierMedium: cfg.TierThresholds(analyze.TierMedium),
				analyze.TierHigh:   cfg.TierThresholds(analyze.TierHigh),
			}
			sc := scan.New(src, cfg.ChainDefs(), tiers, history)
			res, err := sc.Scan(cmd.Context(), scan.Spec{Chain: chain, Tier: tier, Limit: limit, Top: top})
			if err != nil {
				return err
			}

			report.NewPrinter(os.Stdout).Result(res, top)

			if !noReport && len(res.Picks) > 0 {
				path, err := report.WriteRecommendations(".", res)
				if err != nil {
					return err
				}
				fmt.Printf("\nRecommendations logged to: %s\n", path)
			}
			if exportFmt != "" {
				data, err := report.Export(res, exportFmt)
				if err != nil {
					return err
				}
				if outPath == "" {
					outPath = "tokensift_export." + exportFmt
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Printf("Exported %s report to: %s\n", exportFmt, outPath)
			}
			return nil
		},
	}
	cmd.Flags().String("chain", "", "blockchain to scan (ethereum, solana, ...)")
	cmd.Flags().String("risk", "", "risk tier: low, medium or high")
	cmd.Flags().Int("limit", 0, "number of listings to fetch (max 5000)")
	cmd.Flags().Int("top", 0, "number of top picks to print (0 = config default, negative = all)")
	cmd.Flags().String("source", "", "listings source name")
	cmd.Flags().String("offline-file", "", "scan a saved listings JSON dump instead of the API")
	cmd.Flags().Bool("no-report", false, "skip writing the recommendations file")
	cmd.Flags().String("export", "", "also export picks: json, csv or pdf")
	cmd.Flags().String("out", "", "export output path")
	return cmd
}

// Print tier criteria
func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Show the filter criteria for each risk tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := resolveRegistry(cmd)
			if err != nil {
				return err
			}
			for _, tier := range []analyze.Tier{analyze.TierLow, analyze.TierMedium, analyze.TierHigh} {
				th := cfg.TierThresholds(tier)
				fmt.Printf("%s risk:\n", tier)
				fmt.Printf("  market cap      %s - %s\n", report.FormatUSD(th.MinMarketCap), report.FormatUSD(th.MaxMarketCap))
				fmt.Printf("  min 24h volume  %s\n", report.FormatUSD(th.MinVolume24h))
				fmt.Printf("  volume/mcap     %.0f%% - %.0f%%\n", th.VolumeMCapMin*100, th.VolumeMCapMax*100)
				fmt.Printf("  min age         %d days\n", th.MinAgeDays)
				fmt.Printf("  max change      1h %.0f%%, 24h %.0f%%, 7d %.0f%%\n", th.MaxChange1h, th.MaxChange24h, th.MaxChange7d)
				fmt.Printf("  min score       %.0f/100\n", th.MinQualityScore)
				fmt.Printf("  min pairs       %d\n\n", th.MinMarketPairs)
			}
			return nil
		},
	}
}

// Show past scans
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scans from the local history",
		RunE: func(cmd *cobra.Command, args []string) error {
			last, _ := cmd.Flags().GetInt("last")
			picks, _ := cmd.Flags().GetString("picks")
			_, cfg, err := resolveRegistry(cmd)
			if err != nil {
				return err
			}
			st, err := store.New(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer st.Close()

			if picks != "" {
				rows, err := st.Picks(cmd.Context(), picks)
				if err != nil {
					return err
				}
				for _, p := range rows {
					fmt.Printf("#%d\t%s\t%s\t%.2f\t%s\n", p.Position, p.Symbol, p.Name, p.Score, report.FormatPrice(p.Price))
				}
				return nil
			}

			runs, err := st.Runs(cmd.Context(), last)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%s\t%s\t%s/%s\tfetched=%d analyzed=%d passed=%d\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Chain, r.Tier, r.Fetched, r.Analyzed, r.Passed)
			}
			return nil
		},
	}
	cmd.Flags().Int("last", 20, "number of runs to show")
	cmd.Flags().String("picks", "", "show the picks of one run id")
	return cmd
}

// Inspect configured sources
func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Inspect configured listing sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := resolveRegistry(cmd)
			if err != nil {
				return err
			}
			fmt.Printf("default: %s\n", cfg.Defaults.Source)
			for _, name := range reg.Names() {
				fmt.Printf("registered: %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().String("offline-file", "", "register a saved listings JSON dump as a source")
	return cmd
}

// Shell completion
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
