package main

import (
	"context"
	"io"

	"github.com/fwojciec/docdex/index"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service *index.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Index  IndexCmd  `cmd:"" help:"Discover, scrape, and index a library's documentation"`
	Search SearchCmd `cmd:"" help:"Search indexed documentation"`
	Multi  MultiCmd  `cmd:"" help:"Search every collection at once"`
	Stats  StatsCmd  `cmd:"" help:"Show per-collection document counts"`

	Verbose   bool   `short:"v" help:"Enable debug logging"`
	Cache     string `default:"json" enum:"json,sqlite" help:"Bundle cache backend (json, sqlite)"`
	Embedder  string `default:"static" enum:"static,gemini" help:"Embedding strategy (static, gemini)"`
	Extractor string `default:"goquery" enum:"goquery,readability" help:"Content extractor (goquery, readability)"`
	MaxPages  int    `default:"50" help:"Page limit per crawl"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Library string `arg:"" help:"Library name"`
	URL     string `arg:"" optional:"" help:"Documentation URL (skips discovery)"`
	Force   bool   `short:"f" help:"Re-scrape even when a cached snapshot exists"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query      string `arg:"" help:"Search query"`
	Library    string `short:"l" help:"Restrict results to one library, indexing it on demand"`
	Collection string `short:"c" default:"documentation" enum:"documentation,api,examples,tutorials" help:"Collection to search"`
	Limit      int    `short:"n" default:"5" help:"Maximum results"`
}

// MultiCmd is the "multi" subcommand.
type MultiCmd struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"5" help:"Maximum results per collection"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
