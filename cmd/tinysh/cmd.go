package main

import (
	"flag"
	"fmt"
	"os"

	"tinysh/internal/config"
	"tinysh/internal/shell"
)

func usage() {
	fmt.Println("Usage: tinysh [-hvp]")
	fmt.Println("   -h   print this message")
	fmt.Println("   -v   print additional diagnostic information")
	fmt.Println("   -p   do not emit a command prompt")
}

func main() {
	help := flag.Bool("h", false, "print usage and exit")
	verbose := flag.Bool("v", false, "print additional diagnostic information")
	noPrompt := flag.Bool("p", false, "do not emit a command prompt")
	configFile := flag.String("config", "config.yml", "configuration file")
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *noPrompt {
		cfg.Prompt = ""
	}

	s, err := shell.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing shell: %v\n", err)
		os.Exit(1)
	}

	s.Run()
}
