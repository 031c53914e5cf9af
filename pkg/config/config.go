// Package config parses the run configuration for the irradiance-filter
// CLI: flags into an Options struct, validated once at startup.
package config

import (
	"flag"
	"fmt"
)

// Backend selects which filtering core entry point the CLI drives.
type Backend string

const (
	BackendDirect Backend = "direct"
	BackendSH     Backend = "sh"
	BackendGPU    Backend = "gpu"
)

// Options is the fully parsed CLI configuration.
type Options struct {
	InputPath  string
	OutputPath string
	Backend    Backend
	Parallel   bool
	Quiet      bool
}

// Parse parses args (normally os.Args[1:]) into Options.
func Parse(args []string) (*Options, error) {
	fs := flag.NewFlagSet("irrfilter", flag.ContinueOnError)

	input := fs.String("in", "", "path to an input horizontal-cross PNG")
	output := fs.String("out", "irradiance.png", "path to write the filtered horizontal-cross PNG")
	backend := fs.String("backend", string(BackendSH), "filter backend: direct, sh, or gpu")
	parallel := fs.Bool("parallel", false, "use the data-parallel row-worker variant (direct/sh only)")
	quiet := fs.Bool("quiet", false, "suppress progress logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *input == "" {
		return nil, fmt.Errorf("config: -in is required")
	}

	b := Backend(*backend)
	switch b {
	case BackendDirect, BackendSH, BackendGPU:
	default:
		return nil, fmt.Errorf("config: unknown backend %q (want direct, sh, or gpu)", *backend)
	}

	return &Options{
		InputPath:  *input,
		OutputPath: *output,
		Backend:    b,
		Parallel:   *parallel,
		Quiet:      *quiet,
	}, nil
}
