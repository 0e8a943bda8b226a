// Command listedit-cli renders a configured list editor page as HTML, edits
// its widgets in the terminal, or validates widget payloads.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
