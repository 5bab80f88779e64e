package main

import (
	"fmt"
	"io"

	"stellaris-server/internal/rng"

	"github.com/spf13/cobra"
)

type streamOptions struct {
	seed   string
	galaxy uint64
	system uint64
	draws  int
}

func streamCmd() *cobra.Command {
	var opts streamOptions

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Print the stream states derived from a root seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStream(cmd.OutOrStdout(), opts, cmd.Flags().Changed("system"))
		},
	}

	cmd.Flags().StringVar(&opts.seed, "seed", "", "root seed, decimal or 0x-prefixed hex")
	cmd.Flags().Uint64Var(&opts.galaxy, "galaxy", 0, "galaxy index")
	cmd.Flags().Uint64Var(&opts.system, "system", 0, "system index within the galaxy")
	cmd.Flags().IntVar(&opts.draws, "draws", 4, "number of outputs to print")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func runStream(out io.Writer, opts streamOptions, withSystem bool) error {
	root, err := rng.ParseRootSeed(opts.seed)
	if err != nil {
		return err
	}

	rootStream := root.NewStream()
	galaxy := rng.GalaxyStream(rootStream, opts.galaxy)

	fmt.Fprintf(out, "root    %s\n", rootStream)
	fmt.Fprintf(out, "empire  %s\n", rng.EmpireStream(rootStream))
	fmt.Fprintf(out, "galaxy  %s  (index %d)\n", galaxy, opts.galaxy)

	target := galaxy
	if withSystem {
		target = rng.SystemStream(galaxy, opts.system)
		fmt.Fprintf(out, "system  %s  (index %d)\n", target, opts.system)
	}

	for i := 0; i < opts.draws; i++ {
		fmt.Fprintf(out, "draw %-3d 0x%016x\n", i, target.Uint64())
	}
	return nil
}
