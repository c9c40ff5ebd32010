package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/smartbrain/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     HTTP bind address (e.g. ":3000")
//	-g string     gRPC health bind address
//	-d string     PostgreSQL DSN
//	-k string     inference API key
//	-m string     inference model id
//	-e string     inference gRPC address (host:port)
//	-t duration   inference timeout (e.g. "30s", "500ms")
//	-l string     log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-k", "-m", "-e", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve HTTP on")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.InferenceAPIKey, "k", config.InferenceAPIKey, "inference API key")
	fs.StringVar(&config.InferenceModelID, "m", config.InferenceModelID, "inference model id")
	fs.StringVar(&config.InferenceAddr, "e", config.InferenceAddr, "inference gRPC address")
	fs.DurationVar(&config.InferenceTimeout, "t", config.InferenceTimeout, "inference timeout")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
