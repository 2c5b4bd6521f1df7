package main

import (
	"dropxhub/internal/di"
	"dropxhub/internal/structures"
	"flag"
	"log"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		log.Fatalf("dropxhub: %v", err)
	}
}
