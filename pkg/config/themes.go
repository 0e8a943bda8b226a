package config

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type themeAssets struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type themeVariant struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    themeAssets       `yaml:"assets"`
}

type themeEntry struct {
	Version   string                  `yaml:"version"`
	Tokens    map[string]string       `yaml:"tokens"`
	Templates map[string]string       `yaml:"templates"`
	Assets    themeAssets             `yaml:"assets"`
	Variants  map[string]themeVariant `yaml:"variants"`
}

type themesFile struct {
	Default string                `yaml:"default"`
	Themes  map[string]themeEntry `yaml:"themes"`
}

// Themes is a set of go-theme manifests read from a YAML (or JSON) document.
// It implements theme.ThemeSelector.
type Themes struct {
	defaultTheme string
	manifests    map[string]*theme.Manifest
}

// LoadThemes parses a themes document:
//
//	default: acme
//	themes:
//	  acme:
//	    tokens: {list-accent: "#0af"}
//	    variants:
//	      dark: {tokens: {list-accent: "#08c"}}
func LoadThemes(data []byte, source string) (*Themes, error) {
	var doc themesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse themes %s: %w", source, err)
	}
	if len(doc.Themes) == 0 {
		return nil, fmt.Errorf("config: themes %s: no themes defined", source)
	}

	set := &Themes{manifests: make(map[string]*theme.Manifest, len(doc.Themes))}
	for name, entry := range doc.Themes {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("config: themes %s: theme name is required", source)
		}
		manifest := &theme.Manifest{
			Name:      name,
			Version:   entry.Version,
			Tokens:    entry.Tokens,
			Templates: entry.Templates,
			Assets:    theme.Assets{Prefix: entry.Assets.Prefix, Files: entry.Assets.Files},
		}
		if len(entry.Variants) > 0 {
			manifest.Variants = make(map[string]theme.Variant, len(entry.Variants))
			for key, variant := range entry.Variants {
				manifest.Variants[key] = theme.Variant{
					Tokens:    variant.Tokens,
					Templates: variant.Templates,
					Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
				}
			}
		}
		set.manifests[name] = manifest
	}

	set.defaultTheme = strings.TrimSpace(doc.Default)
	if set.defaultTheme == "" {
		set.defaultTheme = set.Names()[0]
	}
	if _, ok := set.manifests[set.defaultTheme]; !ok {
		return nil, fmt.Errorf("config: themes %s: default theme %q not defined", source, set.defaultTheme)
	}
	return set, nil
}

// Names lists the theme names in sorted order.
func (t *Themes) Names() []string {
	names := make([]string, 0, len(t.manifests))
	for name := range t.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name (or the default theme when empty) and variant. Unknown
// variants are an error; an empty variant selects the base theme.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = t.defaultTheme
	}
	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("config: theme %q not defined", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("config: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
