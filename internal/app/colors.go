package app

import "github.com/fatih/color"

// Log accents: cyan for paths, URLs and suggested commands, yellow and red
// for the stale-file sweep. Search results on stdout stay uncolored.
var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
)
