package config

import (
	"flag"
	"os"

	"github.com/paperdispatch/paperdispatch/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string           bind address of the HTTP endpoint
//	-d string           database DSN ("memory" for the in-process store)
//	-k string           JWT signing secret
//	-s string           blob storage directory
//	-mint-token string  print a dev token for the given owner and exit
//
// The function filters os.Args to only include the flags it knows about, so
// it does not interfere with the -c/-config file flag.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-s", "-mint-token"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "bind address of the HTTP endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (\"memory\" for the in-process store)")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing secret")
	fs.StringVar(&cfg.StorageDir, "s", cfg.StorageDir, "blob storage directory")
	fs.StringVar(&cfg.MintTokenFor, "mint-token", cfg.MintTokenFor, "print a dev token for the given owner and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
