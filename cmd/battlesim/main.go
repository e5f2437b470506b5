package main

import (
	"flag"
	"fmt"
	"os"

	"battlesim/internal/routes"
	"battlesim/internal/shiplist"
	"battlesim/pkg/arguments"
	"battlesim/pkg/db"
	"battlesim/pkg/logger"
)

// usage prints the command line syntax expected by this binary.
func usage() {
	fmt.Println("Usage: battlesim -config <name>")
	fmt.Println("  -config  Name of the configuration file to use (without extension)")
}

func main() {
	flag.Usage = usage
	configFile := flag.String("config", "battlesim", "Name of the configuration file to use")
	flag.Parse()

	metadata := arguments.Parse(*configFile)

	log := logger.NewStdLogger(metadata.InstanceID, metadata.PublicIPv4)
	defer log.(*logger.StdLogger).Release()

	log.Trace(logger.Info, "main", fmt.Sprintf("Starting battle simulation server on port %d", metadata.Port))

	dbase := db.NewPool(log)

	list, err := shiplist.NewProxy(dbase, log)
	if err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("Could not load ship list (err: %v)", err))
		os.Exit(1)
	}

	hostConfig, err := shiplist.NewHostConfig(dbase, log)
	if err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("Could not load host configuration (err: %v)", err))
		os.Exit(1)
	}

	server := routes.NewServer(metadata.Port, list, hostConfig, dbase, log)

	defer func() {
		if err := recover(); err != nil {
			log.Trace(logger.Fatal, "main", fmt.Sprintf("Caught unexpected error (err: %v)", err))
			os.Exit(1)
		}
	}()

	if err := server.Serve(); err != nil {
		log.Trace(logger.Error, "main", fmt.Sprintf("Server exited with error (err: %v)", err))
		os.Exit(1)
	}
}
