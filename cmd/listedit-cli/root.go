package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	listedit "github.com/goliatone/go-listedit"
	"github.com/goliatone/go-listedit/pkg/config"
)

type rootOptions struct {
	pageID   string
	pagesDir string
	editable bool
	output   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "listedit-cli",
		Short: "Render, edit and validate list editor pages",
		Long: `listedit-cli works with the signup pages served by listedit-server.

Pages come from the embedded signup definition unless --pages points at a
directory of YAML or JSON page documents.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.pageID, "page", "signup", "page id")
	flags.StringVar(&opts.pagesDir, "pages", "", "directory with page definitions (embedded signup page if empty)")
	flags.BoolVar(&opts.editable, "editable", true, "render add/remove affordances")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	cmd.AddCommand(newHTMLCmd(opts), newEditCmd(opts), newValidateCmd(opts))
	return cmd
}

func (o *rootOptions) loadPages() (*config.Store, error) {
	if dir := strings.TrimSpace(o.pagesDir); dir != "" {
		return listedit.LoadPages(os.DirFS(dir))
	}
	return listedit.LoadPages(nil)
}

func (o *rootOptions) write(cmd *cobra.Command, out []byte) error {
	if o.output == "" {
		_, err := cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	}
	if err := os.WriteFile(o.output, out, 0o644); err != nil {
		return err
	}
	printSuccess(cmd.ErrOrStderr(), "written to %s", o.output)
	return nil
}

// parsePayloads reads "name=json" flag values.
func parsePayloads(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, value := range values {
		name, payload, ok := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("payload %q: expected name=json", value)
		}
		out[name] = payload
	}
	return out, nil
}
