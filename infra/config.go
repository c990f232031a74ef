package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ridge/must"
	"github.com/spf13/pflag"
	"github.com/wojciech-malota-wojcik/fixtures/infra/sharding"
)

// ErrUsage is returned when command line arguments are invalid
var ErrUsage = errors.New("invalid arguments")

// Common is the configuration shared by all the generators
type Common struct {
	// Seed initializes random jitter source
	Seed int64

	// SeedSet is true if seed was provided by user
	SeedSet bool

	// Verify turns on reading generated files back and checking them
	Verify bool

	// VerboseLogging turns on verbose logging
	VerboseLogging bool
}

// HaloConfig stores configuration of halo generator
type HaloConfig struct {
	Common

	// Prefix is the prefix of generated file names
	Prefix string

	// NumOfFiles is the number of files to generate
	NumOfFiles uint64

	// NumOfPIDs is the total number of pids shared by all the halos
	NumOfPIDs uint64

	// NumOfHalos is the total number of halos
	NumOfHalos uint64
}

// PIDConfig stores configuration of pid generator
type PIDConfig struct {
	Common

	// Prefix is the prefix of generated file names
	Prefix string

	// NumOfFiles is the number of files to generate
	NumOfFiles uint64

	// NumOfElems is the total number of pids
	NumOfElems uint64
}

// NewHaloConfigFromCLI creates new halo generator config based on CLI arguments
func NewHaloConfigFromCLI() HaloConfig {
	cfg, err := ParseHaloConfig(os.Args[0], os.Args[1:])
	if err != nil {
		exitUsage(err)
	}
	cfg.Common = withSeed(cfg.Common)
	return cfg
}

// NewPIDConfigFromCLI creates new pid generator config based on CLI arguments
func NewPIDConfigFromCLI() PIDConfig {
	cfg, err := ParsePIDConfig(os.Args[0], os.Args[1:])
	if err != nil {
		exitUsage(err)
	}
	cfg.Common = withSeed(cfg.Common)
	return cfg
}

// ParseHaloConfig parses arguments of halo generator: prefix n_files n_pids n_halos
func ParseHaloConfig(name string, args []string) (HaloConfig, error) {
	cfg := HaloConfig{}
	flags := newFlagSet(name, "prefix n_files n_pids n_halos", &cfg.Common)
	positional, err := parse(flags, args, 4, &cfg.Common)
	if err != nil {
		return HaloConfig{}, err
	}

	cfg.Prefix = positional[0]
	if cfg.NumOfFiles, err = parseUint("n_files", positional[1]); err != nil {
		return HaloConfig{}, err
	}
	if cfg.NumOfPIDs, err = parseUint("n_pids", positional[2]); err != nil {
		return HaloConfig{}, err
	}
	if cfg.NumOfHalos, err = parseUint("n_halos", positional[3]); err != nil {
		return HaloConfig{}, err
	}
	return cfg, nil
}

// ParsePIDConfig parses arguments of pid generator: prefix n_files n_elems
func ParsePIDConfig(name string, args []string) (PIDConfig, error) {
	cfg := PIDConfig{}
	flags := newFlagSet(name, "prefix n_files n_elems", &cfg.Common)
	positional, err := parse(flags, args, 3, &cfg.Common)
	if err != nil {
		return PIDConfig{}, err
	}

	cfg.Prefix = positional[0]
	if cfg.NumOfFiles, err = parseUint("n_files", positional[1]); err != nil {
		return PIDConfig{}, err
	}
	if cfg.NumOfElems, err = parseUint("n_elems", positional[2]); err != nil {
		return PIDConfig{}, err
	}
	return cfg, nil
}

func newFlagSet(name, positional string, common *Common) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.Int64Var(&common.Seed, "seed", 0, "Seed of random jitter applied to shard sizes, random if not set")
	flags.BoolVar(&common.Verify, "verify", false, "Reads generated files back and verifies them")
	flags.BoolVarP(&common.VerboseLogging, "verbose", "v", false, "Turns on verbose logging")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] %s\n", name, positional)
		flags.PrintDefaults()
	}
	return flags
}

func parse(flags *pflag.FlagSet, args []string, numOfPositional int, common *Common) ([]string, error) {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrUsage, err)
	}
	common.SeedSet = flags.Changed("seed")

	positional := flags.Args()
	if len(positional) != numOfPositional {
		return nil, fmt.Errorf("%w: %d positional arguments expected, %d provided", ErrUsage, numOfPositional, len(positional))
	}
	return positional, nil
}

func parseUint(name, value string) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrUsage, name, value)
	}
	return v, nil
}

// withSeed sets random seed if user didn't provide one
func withSeed(common Common) Common {
	if !common.SeedSet {
		seed, err := sharding.NewRandomSeed()
		must.OK(err)
		common.Seed = seed
	}
	return common
}

func exitUsage(err error) {
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintln(os.Stderr, err)
	fmt.Fprintf(os.Stderr, "Run %s --help for usage\n", os.Args[0])
	os.Exit(2)
}
