package config

import (
	"flag"
	"os"

	"github.com/scheme-sarthi/sarthi/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local slot database (default from Config)
//	-l string   default interface language (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local slot database")
	fs.StringVar(&cfg.DefaultLanguage, "l", cfg.DefaultLanguage, "default interface language")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
