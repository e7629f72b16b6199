// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the note keyboard as an IPC server, a line CLI or a TUI.

Note: This is a BETA release. APIs and functionality may rapidly change.

notekeys gives sticky notes drawn on a desktop wallpaper a virtual keyboard
with word suggestions. Each key press lands in the note's append-only buffer,
the word being typed is completed from a patricia-indexed dictionary, and
after a space the most likely next words are offered instead.

# Usage

Start the server with default settings:

	notekeys

Use a custom word list, a note file and debug logging:

	notekeys -data words.txt -store ~/.local/share/notekeys/notes.msgpack -d

Type into a note from a terminal:

	notekeys -c      line mode, :1-:9 picks a suggestion
	notekeys -t      full screen keyboard

The -data path may be a text word list (one word per line), a single chunk
file or a directory of dict_0001.bin style chunks written by wordconv. With
no path the embedded list is used; a path that cannot be read falls back to
a tiny built-in list.

# Configuration

Runtime configuration lives in a TOML file created with defaults on first
run, [UserConfigDir]/notekeys/config.toml unless -config says otherwise:

	[suggest]
	prefix_weight = 100
	max_length_weight = 20
	common_weight = 50
	context_weight = 30
	frequent_weight = 25
	max_completions = 6
	max_next_words = 5
	context_words = 3

	[keyboard]
	requery_delay_ms = 0

	[store]
	path = ""
	layout = "properties"

# IPC Protocol

The server reads msgpack requests from stdin and writes one response per
request to stdout. See package server for the message shapes:

	{"id": "r1", "op": "key", "n": "2b1f...", "k": "t"}
	{"id": "r1", "n": "2b1f...", "x": "t", "st": "suggesting", "s": [{"w": "the", "r": 1}], "c": 1, "t": 85}

Logs always go to stderr.

# Command Line Flags

	-data string
	    Word list file or chunk directory (default: embedded list)
	-store string
	    Note property file (default: keep notes in memory)
	-config string
	    Config file path
	-rebuild-config
	    Overwrite the default config.toml with defaults
	-c  Run the line CLI
	-t  Run the TUI
	-d  Enable debug mode with detailed logging
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/notekeys/internal/cli"
	"github.com/bastiangx/notekeys/internal/tui"
	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/config"
	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/bastiangx/notekeys/pkg/server"
	"github.com/bastiangx/notekeys/pkg/store"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "notekeys"
	gh      = "https://github.com/bastiangx/notekeys"
)

// sigHandler is a simple handler for OS signals to exit normally.
// Note text is persisted on every change, so nothing is lost here.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary, store and the chosen host together.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Word list file or chunk directory (default: embedded list)")
	storePath := flag.String("store", "", "Note property file (default: from config, else in memory)")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	tuiMode := flag.Bool("t", false, "Run the terminal keyboard")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config.toml with defaults and exit")

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

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config rebuilt at %s\n", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	// bubbletea owns the terminal and handles ctrl+c itself
	if !*tuiMode {
		sigHandler()
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	log.Debugf("Config dir: %s", pathResolver.GetConfigDir())

	engine := suggest.NewEngine(loadDictionary(pathResolver, firstNonEmpty(*dataPath, cfg.Dict.Path), cfg.Dict.MaxWords), cfg.EngineOptions())
	log.Debug("Engine ready", "words", engine.Dictionary().Len(), "source", engine.Dictionary().Name())

	notes, err := store.Open(firstNonEmpty(*storePath, cfg.Store.Path), cfg.Store.Layout)
	if err != nil {
		log.Fatalf("Failed to open note store: %v", err)
	}

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		note := firstNote(notes)
		handler := cli.NewInputHandler(engine, store.NewTextPersister(notes, note.ID), note.Text, cli.Options{
			ShowScores:   cfg.CLI.ShowScores,
			ShowTiming:   cfg.CLI.ShowTiming,
			RequeryDelay: cfg.RequeryDelay(),
		})
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *tuiMode:
		note := firstNote(notes)
		// keep log lines out of the alt screen
		log.SetLevel(log.FatalLevel)
		m := tui.NewModel(engine, store.NewTextPersister(notes, note.ID), "notekeys", note.Text, cfg.RequeryDelay())
		if err := tui.Run(m); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}

	default:
		log.Debug("spawning IPC")
		srv := server.NewServer(engine, notes, server.Options{RequeryDelay: cfg.RequeryDelay()})
		showStartupInfo(engine)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}
}

// loadDictionary opens path, or the embedded list when path is empty. Any
// failure ends in the fallback list rather than an exit.
func loadDictionary(pr *utils.PathResolver, path string, maxWords int) *dictionary.Dictionary {
	if path == "" {
		return dictionary.Load(dictionary.Embedded())
	}
	resolved, ok := pr.FindExisting(path)
	if !ok {
		log.Warnf("Dictionary %s not found", path)
		return dictionary.Load(nil)
	}
	src, err := dictionary.OpenSource(resolved, maxWords)
	if err != nil {
		log.Warnf("Failed to open dictionary %s: %v", resolved, err)
		return dictionary.Load(nil)
	}
	return dictionary.Load(src)
}

// firstNote returns the first stored note, creating one when there is none.
func firstNote(notes store.NoteStore) store.Note {
	existing, err := notes.Load()
	if err != nil {
		log.Warnf("Failed to load notes: %v", err)
	}
	if len(existing) > 0 {
		return existing[0]
	}
	note := store.NewNote()
	if err := notes.Save(note); err != nil {
		log.Warnf("Failed to create note: %v", err)
	}
	return note
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

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
	logger.Print("[ NoteKeys ] A virtual keyboard with word suggestions for sticky notes")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(engine *suggest.Engine) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" NoteKeys ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dictionary: %s (%s words)", engine.Dictionary().Name(), utils.FormatWithCommas(engine.Dictionary().Len()))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
