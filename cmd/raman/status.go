package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// loadStatusLine formats one per-file load outcome with a ✓/✗ marker.
func loadStatusLine(ok bool, message string, colorize bool) string {
	mark := "✓"
	color := ansiGreen
	if !ok {
		mark = "✗"
		color = ansiRed
	}
	line := fmt.Sprintf("  %s %s", mark, message)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
