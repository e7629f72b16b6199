// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main converts a raw word list into a notekeys dictionary.

Words are lower-cased and kept only when purely alphabetic and within the
length bounds; the result is de-duplicated and sorted. The output is either a
plain list, one word per line, or a directory of dict_NNNN.bin chunk files.

	wordconv -in words.txt -out words.clean.txt
	wordconv -in words.txt -out data/ -format chunk -chunk 10000
*/
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/charmbracelet/log"
)

type options struct {
	in        string
	out       string
	format    string
	chunkSize int
	minLen    int
	maxLen    int
}

func main() {
	opts := options{}
	flag.StringVar(&opts.in, "in", "words.txt", "Raw word list, one word per line")
	flag.StringVar(&opts.out, "out", "", "Output file (text) or directory (chunk)")
	flag.StringVar(&opts.format, "format", "text", "Output format: text or chunk")
	flag.IntVar(&opts.chunkSize, "chunk", 10000, "Words per chunk file")
	flag.IntVar(&opts.minLen, "min", dictionary.DefaultMinWordLen, "Minimum word length")
	flag.IntVar(&opts.maxLen, "max", dictionary.DefaultMaxWordLen, "Maximum word length")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	if opts.out == "" {
		log.Fatal("missing -out")
	}

	if err := convert(opts); err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
}

// convert reads, cleans and writes one word list.
func convert(opts options) error {
	if opts.minLen < 1 || opts.maxLen < opts.minLen {
		return fmt.Errorf("invalid length bounds %d..%d", opts.minLen, opts.maxLen)
	}

	raw, err := dictionary.TextFile(opts.in).Words()
	if err != nil {
		return err
	}
	log.Infof("Processing %s words...", utils.FormatWithCommas(len(raw)))

	cleaned := dictionary.Clean(raw, opts.minLen, opts.maxLen)
	log.Infof("Filtered to %s valid words", utils.FormatWithCommas(len(cleaned)))
	if len(cleaned) == 0 {
		return fmt.Errorf("no usable words in %s", opts.in)
	}

	switch opts.format {
	case "text":
		data := strings.Join(cleaned, "\n") + "\n"
		if err := utils.WriteFileAtomic(opts.out, []byte(data)); err != nil {
			return err
		}
		log.Infof("Wrote %s", opts.out)
	case "chunk":
		n, err := dictionary.WriteChunks(opts.out, cleaned, opts.chunkSize)
		if err != nil {
			return err
		}
		log.Infof("Wrote %d chunk files to %s", n, opts.out)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	log.Debugf("First words: %v", cleaned[:min(len(cleaned), 20)])
	return nil
}
