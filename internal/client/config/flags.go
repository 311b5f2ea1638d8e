package config

import (
	"flag"
	"os"
	"time"

	"github.com/paperdispatch/paperdispatch/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   entry-point URL of the dispatch API
//	-t string   bearer token
//	-o string   sender organization identifier
//	-i int      online check interval in seconds
//	-m          optimistic merge mode (skip the refetch after mutations)
//
// The function filters os.Args to only include the flags it knows about, so
// it does not interfere with the -c/-config file flag.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-o", "-i", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EntryPointURL, "a", cfg.EntryPointURL, "entry-point URL of the dispatch API")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")
	fs.StringVar(&cfg.SenderOrganizationID, "o", cfg.SenderOrganizationID, "sender organization identifier")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.Optimistic, "m", cfg.Optimistic, "optimistic merge mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
