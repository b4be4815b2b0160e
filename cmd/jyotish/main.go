// Jyotish — Vedic astrology computation engine
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/jyotish/api"
	"github.com/seenimoa/jyotish/internal/ashtakavarga"
	"github.com/seenimoa/jyotish/internal/config"
	"github.com/seenimoa/jyotish/internal/dasha"
	"github.com/seenimoa/jyotish/internal/ephemeris"
	"github.com/seenimoa/jyotish/internal/kundali"
	"github.com/seenimoa/jyotish/internal/panchanga"
	"github.com/seenimoa/jyotish/internal/shadbala"
	"github.com/seenimoa/jyotish/internal/varga"
	"github.com/seenimoa/jyotish/pkg/models"
	"github.com/seenimoa/jyotish/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jyotish",
	Short: "Jyotish — Vedic astrology computation engine",
	Long: `Jyotish computes Vedic astrological artifacts from a birth instant
and location: divisional charts (vargas), the vimshottari dasha tree,
shadbala strength scores, ashtakavarga bindu tables, panchanga
calendrical elements, and yoga/vargottama findings.

Positions come from a pluggable ephemeris provider; the bundled "file"
provider reads pre-computed sidereal sample tables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("datetime", "", "birth or query instant, RFC3339 (e.g. 1995-05-16T18:38:00+05:30)")
	rootCmd.PersistentFlags().Float64("lat", 0, "latitude in decimal degrees, north positive")
	rootCmd.PersistentFlags().Float64("lon", 0, "longitude in decimal degrees, east positive")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(vargaCmd)
	rootCmd.AddCommand(dashaCmd)
	rootCmd.AddCommand(panchangaCmd)
	rootCmd.AddCommand(shadbalaCmd)
	rootCmd.AddCommand(ashtakavargaCmd)
	rootCmd.AddCommand(yogasCmd)
	rootCmd.AddCommand(serveCmd)

	vargaCmd.Flags().Int("divisor", 9, "divisional chart divisor (2,3,4,7,9,10,12,16,20,24,27,30,40,45,60)")
	dashaCmd.Flags().String("at", "", "query instant, RFC3339 (default: now)")
}

// provider builds the configured ephemeris provider.
func provider() (ephemeris.Provider, error) {
	reg := ephemeris.NewRegistry()
	if cfg.Ephemeris.File != "" {
		fp, err := ephemeris.NewFileProvider(cfg.Ephemeris.File)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(fp); err != nil {
			return nil, err
		}
	}
	return reg.Get(cfg.Ephemeris.Provider)
}

// birthFromFlags parses the shared birth flags.
func birthFromFlags(cmd *cobra.Command) (kundali.BirthDetails, error) {
	raw, _ := cmd.Flags().GetString("datetime")
	if raw == "" {
		return kundali.BirthDetails{}, fmt.Errorf("--datetime is required: %w", kundali.ErrInvalidBirth)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return kundali.BirthDetails{}, fmt.Errorf("parse --datetime %q: %w", raw, kundali.ErrInvalidBirth)
	}
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	b := kundali.BirthDetails{Instant: t, Latitude: lat, Longitude: lon}
	return b, b.Validate()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Jyotish %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Chart Command ---

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute the full natal artifact set",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		art, err := kundali.Compute(cmd.Context(), p, birth, kundali.Options{
			Divisions:    cfg.Varga.Divisions,
			HorizonYears: cfg.Dasha.HorizonYears,
			Shadbala:     shadbala.Options{IncludeNodes: cfg.Calibration.ShadbalaIncludeNodes},
			Ashtakavarga: ashtakavarga.Options{IncludeNodes: cfg.Calibration.AshtakavargaIncludeNodes},
		})
		if err != nil {
			return err
		}

		d1 := art.Divisions["D1"]
		fmt.Printf("Lagna: %s  (%s)\n", utils.FormatSignDMS(art.Chart.Ascendant, d1.Ascendant.String()), utils.FormatDMS(art.Chart.Ascendant))
		for _, body := range models.Bodies {
			pl := d1.Placements[body]
			retro := ""
			if pl.Retro {
				retro = " (R)"
			}
			fmt.Printf("%-8s %-24s house %2d  %s pada %d%s\n",
				body, utils.FormatSignDMS(pl.Longitude, pl.SignName), pl.House, pl.Nakshatra, pl.Pada, retro)
		}

		fmt.Println("\nVargottama:")
		for _, body := range models.SevenBodies {
			if art.Vargottama[body] {
				fmt.Printf("  %s\n", body)
			}
		}
		if len(art.Yogas) > 0 {
			fmt.Println("\nYogas:")
			for _, y := range art.Yogas {
				fmt.Printf("  %-16s %v\n", y.Name, y.Bodies)
			}
		}
		return nil
	},
}

// --- Varga Command ---

var vargaCmd = &cobra.Command{
	Use:   "varga",
	Short: "Compute one divisional chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		divisor, _ := cmd.Flags().GetInt("divisor")

		chart, err := kundali.BuildChart(cmd.Context(), p, birth)
		if err != nil {
			return err
		}
		div, err := varga.ComputeChart(chart.Ascendant, chart.Positions, divisor)
		if err != nil {
			return err
		}
		name, _ := varga.DivisionName(divisor)
		fmt.Printf("%s (%s)\n", div.Division, name)
		fmt.Printf("Lagna: %s\n", div.Ascendant)
		for _, body := range models.Bodies {
			fmt.Printf("%-8s %s\n", body, div.Placements[body].SignName)
		}
		return nil
	},
}

// --- Dasha Command ---

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Build the vimshottari tree and resolve the active chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		chart, err := kundali.BuildChart(cmd.Context(), p, birth)
		if err != nil {
			return err
		}
		moon := chart.Positions[models.Moon]
		tree, err := dasha.Build(moon.Longitude, chart.Birth, cfg.Dasha.HorizonYears)
		if err != nil {
			return err
		}

		at := time.Now()
		if raw, _ := cmd.Flags().GetString("at"); raw != "" {
			at, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return fmt.Errorf("parse --at %q: %w", raw, err)
			}
		}

		fmt.Println("Mahadashas:")
		for _, m := range tree.Mahadashas() {
			fmt.Printf("  %-8s %s — %s\n", m.Lord, m.Start.Format("2006-01-02"), m.End.Format("2006-01-02"))
		}
		chain, err := tree.Query(at)
		if err != nil {
			return err
		}
		fmt.Printf("\nActive at %s:\n", at.Format(time.RFC3339))
		fmt.Printf("  Mahadasha:       %s\n", chain.Mahadasha.Lord)
		fmt.Printf("  Antardasha:      %s\n", chain.Antardasha.Lord)
		fmt.Printf("  Pratyantardasha: %s\n", chain.Pratyantardasha.Lord)
		return nil
	},
}

// --- Panchanga Command ---

var panchangaCmd = &cobra.Command{
	Use:   "panchanga",
	Short: "Derive the five calendrical elements for an instant and place",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		engine := panchanga.New(p, cfg.Panchanga.ToleranceSeconds, cfg.Panchanga.MaxIterations)
		pan, err := engine.Compute(cmd.Context(), birth.Instant, birth.Latitude, birth.Longitude)
		if err != nil {
			return err
		}
		printElement := func(e models.PanchangaElement) {
			fmt.Printf("%-10s %-20s ends %s  next %s\n", e.Kind, e.Name, e.EndsAt.Format("15:04:05 MST"), e.Next)
		}
		printElement(pan.Vara)
		printElement(pan.Tithi)
		printElement(pan.Nakshatra)
		printElement(pan.Yoga)
		printElement(pan.Karana)
		return nil
	},
}

// --- Shadbala Command ---

var shadbalaCmd = &cobra.Command{
	Use:   "shadbala",
	Short: "Score six-fold planetary strength",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		chart, err := kundali.BuildChart(cmd.Context(), p, birth)
		if err != nil {
			return err
		}
		scores, err := shadbala.Compute(chart, shadbala.Options{IncludeNodes: cfg.Calibration.ShadbalaIncludeNodes})
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %8s %8s %8s %8s %8s %8s %9s %7s\n",
			"Body", "Sthana", "Dig", "Kala", "Chesta", "Naisarg", "Drik", "Total", "Rupas")
		for _, body := range models.SevenBodies {
			s, ok := scores[body]
			if !ok {
				continue
			}
			fmt.Printf("%-8s %8.1f %8.1f %8.1f %8.1f %8.1f %8.1f %9.1f %7.2f\n",
				body, s.Sthana, s.Dig, s.Kala, s.Chesta, s.Naisargika, s.Drik, s.Total, s.Rupas())
		}
		return nil
	},
}

// --- Ashtakavarga Command ---

var ashtakavargaCmd = &cobra.Command{
	Use:   "ashtakavarga",
	Short: "Compute bindu tables and sarvashtakavarga",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		chart, err := kundali.BuildChart(cmd.Context(), p, birth)
		if err != nil {
			return err
		}
		avOpts := ashtakavarga.Options{IncludeNodes: cfg.Calibration.AshtakavargaIncludeNodes}
		set, err := ashtakavarga.Compute(chart, avOpts)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s", "")
		for s := models.Aries; s <= models.Pisces; s++ {
			fmt.Printf(" %3.3s", s.String())
		}
		fmt.Println()
		for _, subject := range ashtakavarga.Subjects(avOpts) {
			fmt.Printf("%-8s", subject)
			for _, b := range set.Tables[subject] {
				fmt.Printf(" %3d", b)
			}
			fmt.Println()
		}
		fmt.Printf("%-8s", "Sarva")
		for _, b := range set.Sarva {
			fmt.Printf(" %3d", b)
		}
		fmt.Println()
		return nil
	},
}

// --- Yogas Command ---

var yogasCmd = &cobra.Command{
	Use:   "yogas",
	Short: "Detect named combinations and vargottama dignities",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		birth, err := birthFromFlags(cmd)
		if err != nil {
			return err
		}
		art, err := kundali.Compute(cmd.Context(), p, birth, kundali.Options{
			Divisions:    []int{9},
			HorizonYears: cfg.Dasha.HorizonYears,
		})
		if err != nil {
			return err
		}
		if len(art.Yogas) == 0 {
			fmt.Println("No catalog yogas present.")
		}
		for _, f := range art.Yogas {
			fmt.Printf("%-16s %v", f.Name, f.Bodies)
			if f.Note != "" {
				fmt.Printf("  — %s", f.Note)
			}
			fmt.Println()
		}
		fmt.Println("\nVargottama:")
		for _, body := range models.SevenBodies {
			fmt.Printf("  %-8s %v\n", body, art.Vargottama[body])
		}
		return nil
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := provider()
		if err != nil {
			return err
		}
		srv := api.NewServer(cfg, p)
		fmt.Printf("Jyotish API listening on %s\n", cfg.API.Addr())
		return srv.ListenAndServe(cfg.API.Addr())
	},
}
