package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-listedit/pkg/renderers/html"
)

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		html.PartialPage:   "templates/page.tmpl",
		html.PartialWidget: "templates/widget.tmpl",
	}
}

// resolveTheme turns a selector result into renderer configuration: partials
// are fallbacks overlaid by manifest and variant templates, tokens merge the
// same way and each token becomes a "--token" CSS variable.
func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStringMap(nil, o.themeFallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	assets := theme.Assets{Files: map[string]string{}}
	if manifest := selection.Manifest; manifest != nil {
		cfg.Partials = mergeStringMap(cfg.Partials, manifest.Templates)
		cfg.Tokens = mergeStringMap(cfg.Tokens, manifest.Tokens)
		assets.Prefix = manifest.Assets.Prefix
		assets.Files = mergeStringMap(assets.Files, manifest.Assets.Files)

		if v, ok := manifest.Variants[selection.Variant]; ok {
			cfg.Partials = mergeStringMap(cfg.Partials, v.Templates)
			cfg.Tokens = mergeStringMap(cfg.Tokens, v.Tokens)
			if v.Assets.Prefix != "" {
				assets.Prefix = v.Assets.Prefix
			}
			assets.Files = mergeStringMap(assets.Files, v.Assets.Files)
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(assets)
	return cfg, nil
}

func assetResolver(assets theme.Assets) func(string) string {
	return func(key string) string {
		file, ok := assets.Files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || assets.Prefix == "" {
			return file
		}
		return strings.TrimRight(assets.Prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
