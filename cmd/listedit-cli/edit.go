package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	listedit "github.com/goliatone/go-listedit"
	"github.com/goliatone/go-listedit/pkg/orchestrator"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/renderers/tui"
)

func newEditCmd(root *rootOptions) *cobra.Command {
	var format string
	var payloadFlags []string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the page widgets in the terminal and print their payloads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payloads, err := parsePayloads(payloadFlags)
			if err != nil {
				return printError(cmd.ErrOrStderr(), "parse payloads", err)
			}
			store, err := root.loadPages()
			if err != nil {
				return printError(cmd.ErrOrStderr(), "load pages", err)
			}
			renderer, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(os.Stderr)),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithTheme(tui.Theme{
					InfoPrefix:  color.CyanString("› "),
					ErrorPrefix: color.RedString("✗ "),
				}),
			)
			if err != nil {
				return printError(cmd.ErrOrStderr(), "configure renderer", err)
			}
			registry := render.NewRegistry()
			registry.MustRegister(renderer)

			gen := listedit.NewOrchestrator(
				orchestrator.WithPages(store),
				orchestrator.WithRegistry(registry),
			)
			out, err := gen.Generate(cmd.Context(), orchestrator.Request{
				PageID:   root.pageID,
				Renderer: renderer.Name(),
				Editable: root.editable,
				Payloads: payloads,
			})
			if err != nil {
				return printError(cmd.ErrOrStderr(), "edit page", err)
			}

			if tui.OutputFormat(format) == tui.OutputFormatJSON {
				page, _ := store.Page(root.pageID)
				if _, err := reportIssues(cmd.ErrOrStderr(), page, out); err != nil {
					return printError(cmd.ErrOrStderr(), "validate payloads", err)
				}
			}
			return root.write(cmd, out)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	cmd.Flags().StringArrayVar(&payloadFlags, "payload", nil, "initial widget payload as name=json (repeatable)")
	return cmd
}
