package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

func printSuccess(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, a...))
}

func printWarning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! %s\n", fmt.Sprintf(format, a...))
}

// printError reports err on w and returns it so RunE can hand it to cobra,
// which stays silent.
func printError(w io.Writer, title string, err error) error {
	red.Fprintf(w, "%s: ", title)
	fmt.Fprintln(w, err)
	return fmt.Errorf("%s: %w", title, err)
}
