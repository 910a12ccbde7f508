package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JackWReid/veer/internal/config"
	"github.com/JackWReid/veer/internal/editor"
)

var Version = "dev"

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML config file")
	showVersion := flag.Bool("v", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: veer [-h] [-v] [-config PATH] [FILES...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("veer", Version)
		return
	}
	if err := run(*configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "veer: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, filenames []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, closeLog, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer closeLog()

	app := editor.NewApp(cfg, log)
	if err := app.Open(filenames); err != nil {
		return err
	}
	return app.Run()
}
