package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"stellaris-server/internal/generation"
	"stellaris-server/internal/session"
	"stellaris-server/internal/worker"
	"stellaris-server/internal/world"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const tickInterval = 16 * time.Millisecond

type generateOptions struct {
	paramsFile string
	seed       string
	galaxy     uint64
	count      int
	density    float64
	asJSON     bool
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one galaxy through a headless session and print its systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.Flags(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.paramsFile, "params", "p", "", "YAML file with generation parameters")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "root seed, decimal or 0x-prefixed hex")
	cmd.Flags().Uint64Var(&opts.galaxy, "galaxy", 0, "galaxy index under the root seed")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of planetary systems")
	cmd.Flags().Float64Var(&opts.density, "density", 0, "systems per unit area")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print systems as JSON")
	return cmd
}

// loadSettings applies the parameter file over base. Keys missing from the
// file keep their base value.
func loadSettings(path string, base generation.Settings) (generation.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read params file: %w", err)
	}

	settings := base
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return base, fmt.Errorf("failed to parse params file %s: %w", path, err)
	}
	return settings, nil
}

func applyFlags(settings *generation.Settings, flags *pflag.FlagSet, opts generateOptions) {
	if flags.Changed("seed") {
		settings.RootSeed = opts.seed
	}
	if flags.Changed("galaxy") {
		settings.GalaxyIndex = opts.galaxy
	}
	if flags.Changed("count") {
		settings.SiteCount = opts.count
	}
	if flags.Changed("density") {
		settings.Density = opts.density
	}
}

func runGenerate(ctx context.Context, out io.Writer, flags *pflag.FlagSet, opts generateOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings := generation.DefaultSettings(cfg.Galaxy)
	if opts.paramsFile != "" {
		if settings, err = loadSettings(opts.paramsFile, settings); err != nil {
			return err
		}
	}
	applyFlags(&settings, flags, opts)

	req, err := settings.Request()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	pool := worker.NewPool(cfg.Worker.PoolSize)
	w := world.New(float32(cfg.Galaxy.SystemScale))
	s := session.New(generation.NewOrchestrator(pool), w)

	if err := s.CompleteSetup(); err != nil {
		return err
	}
	if err := s.NewGame(req); err != nil {
		return err
	}

	started := time.Now()
	if _, err := s.Run(ctx, tickInterval); err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(w.Systems())
	}
	return printSummary(out, w, s.Bounds(), s.Ticks(), time.Since(started))
}

func printSummary(out io.Writer, w *world.World, bounds session.MotionBounds, ticks int, elapsed time.Duration) error {
	var totalMass float64
	for _, s := range w.Systems() {
		totalMass += float64(s.Mass)
	}

	for _, g := range w.Galaxies() {

		_, err := fmt.Fprintf(out,
			"root seed     %s\ngalaxy index  %d\nradius        %.3f\nsystems       %d\ntotal mass    %.3f\ncamera radius %.3f\nticks         %d (%s)\n",
			g.Root, g.Index, g.Radius, g.Systems, totalMass, bounds.MaxRadius, ticks, elapsed.Round(time.Millisecond),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
