package config

import (
	"flag"
	"os"

	"github.com/evercare/planhub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the PlanHub API (default from Config)
//	-s string   path to the local state database (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the PlanHub API")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "path to the local state database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
