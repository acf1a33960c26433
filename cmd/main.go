package main

import (
	"flag"
	"fmt"
	"os"
	"stasm/internal/compiler"
	"stasm/internal/config"
	"stasm/internal/logger"
	"stasm/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the stasm virtual machine.
func main() {
	options := compiler.Compiler{}
	var configFile string

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Trace, "t", false, "Trace every executed instruction")
	flag.BoolVar(&options.List, "l", false, "List the resolved program before running it")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum number of executed instructions (0 = unlimited)")
	flag.StringVar(&configFile, "config", "", "Configuration file (default: ./"+config.DefaultFile+" if present)")

	flag.Parse()
	args := flag.Args()

	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg, err := loadConfig(configFile)
	logger.Init(options.Verbose || cfg.Verbose, options.Trace || cfg.Trace, options.NoColor || cfg.NoColor)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	merge(&options, cfg)

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	if err := options.Compile(); err != nil {
		if options.Verbose {
			log.Fatal("Run failed", "error", fmt.Sprintf("%+v", err))
		}
		log.Fatal("Run failed", "error", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, _, err := config.Find(".")
	return cfg, err
}

// merge fills every option not set on the command line from the configuration.
func merge(options *compiler.Compiler, cfg config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["v"] {
		options.Verbose = cfg.Verbose
	}
	if !set["n"] {
		options.NoColor = cfg.NoColor
	}
	if !set["t"] {
		options.Trace = cfg.Trace
	}
	if !set["l"] {
		options.List = cfg.List
	}
	if !set["s"] {
		options.MaxSteps = cfg.MaxSteps
	}
	options.CommentMarkers = cfg.CommentMarkers
}
