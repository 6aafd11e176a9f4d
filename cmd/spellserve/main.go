/*
Package main implements the spell check server and CLI [DBG] application.

Spellserve proposes ranked corrections for misspelled tokens using a static
dictionary, word frequencies and a bigram-likelihood model. It runs as a
msgpack IPC server for integration with editors and browser extensions, or
as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	spellserve

Use a custom lexicon directory and enable debug mode:

	spellserve -data /path/to/lexicons -d

Run in CLI mode for interactive testing:

	spellserve -c -lang pt-PT

The data directory holds one compiled lexicon per language, named after the
canonical tag (en-US.lex, pt-PT.lex). Blobs are produced by the lexc tool
from word frequency lists; a plain en-US.txt word list also works, with
reduced ranking quality (no bigram table).

# Configuration

Runtime configuration is a TOML file:

	[server]
	enabled = true
	max_suggestions = 5
	max_token_len = 60

	[lexicon]
	data_dir = "data/"
	default_language = "en-US"

The config file is created with defaults if it doesn't exist. The enabled
flag can also be flipped over IPC without a restart.

# IPC Protocol

The server communicates via msgpack over stdin/stdout. A check request:

	{"id": "req1", "t": "helo", "lang": "en-US", "cw": "zyx"}

and the verdict with ranked suggestions:

	{"id": "req1", "ok": false, "s": ["hello", "help", "hell"], "c": 3, "tm": 98}

See the server package docs for the completion and control frames.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/cli"
	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/lexicon"
	"github.com/spellserve/spellserve/pkg/server"
	"github.com/spellserve/spellserve/pkg/spell"
)

const (
	Version = "0.3.0"
	AppName = "spellserve"
	gh      = "https://github.com/spellserve/spellserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the store, checker and either the server or the CLI loop.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", defaultConfig.Lexicon.DataDir, "Directory containing compiled lexicon files")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	language := flag.String("lang", defaultConfig.CLI.DefaultLanguage, "Language tag for CLI checks (e.g. en-US, pt-PT)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	resolvedConfigPath := *configPath
	if resolvedConfigPath == "" {
		var err error
		resolvedConfigPath, err = config.GetDefaultConfigPath()
		if err != nil {
			log.Warnf("Failed to determine config path, using builtin defaults: %v", err)
		}
	}

	appConfig := defaultConfig
	if resolvedConfigPath != "" {
		var err error
		appConfig, err = config.InitConfig(resolvedConfigPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		log.Debugf("Using config file: (%s)", resolvedConfigPath)
	}

	if *dataDir != defaultConfig.Lexicon.DataDir {
		appConfig.Lexicon.DataDir = *dataDir
	}
	log.Debugf("Using lexicon dir at: %s", appConfig.Lexicon.DataDir)

	store := lexicon.NewStore(appConfig.Lexicon.DataDir)
	checker := spell.NewChecker(store)
	checker.SetEnabled(appConfig.Server.Enabled)

	// Warm the default lexicon so the first check doesn't pay the load.
	// A failure here is not fatal: checks fail open until data shows up.
	if _, err := store.Load(appConfig.Lexicon.DefaultLanguage); err != nil {
		log.Warnf("Default lexicon not loaded: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(checker, *language, appConfig.Server.MaxTokenLen)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(checker, appConfig, resolvedConfigPath)

	showStartupInfo(appConfig.Lexicon.DataDir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion shows the styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ spellserve ] inline spell checking, served fast")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" spellserve ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("lexicon dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
