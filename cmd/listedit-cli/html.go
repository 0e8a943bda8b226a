package main

import (
	"github.com/spf13/cobra"

	listedit "github.com/goliatone/go-listedit"
	"github.com/goliatone/go-listedit/pkg/orchestrator"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/renderers/html"
)

func newHTMLCmd(root *rootOptions) *cobra.Command {
	var assets string
	var payloadFlags []string

	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render the page as HTML",
		Example: `  listedit-cli html --page signup --payload 'slot=[["Mon",3]]'
  listedit-cli html --editable=false --assets /assets -o signup.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payloads, err := parsePayloads(payloadFlags)
			if err != nil {
				return printError(cmd.ErrOrStderr(), "parse payloads", err)
			}
			store, err := root.loadPages()
			if err != nil {
				return printError(cmd.ErrOrStderr(), "load pages", err)
			}
			renderer, err := html.New(html.WithAssetURLPrefix(assets))
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
				return printError(cmd.ErrOrStderr(), "render page", err)
			}
			return root.write(cmd, out)
		},
	}
	cmd.Flags().StringVar(&assets, "assets", "", "stylesheet URL prefix")
	cmd.Flags().StringArrayVar(&payloadFlags, "payload", nil, "initial widget payload as name=json (repeatable)")
	return cmd
}
