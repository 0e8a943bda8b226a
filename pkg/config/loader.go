package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds the pages loaded from one or more files.
type Store struct {
	pages map[string]Page
}

type documentFile struct {
	Pages map[string]Page `json:"pages" yaml:"pages"`
}

// Load parses a single JSON or YAML document. source names the document in
// error messages.
func Load(data []byte, source string) (*Store, error) {
	store := &Store{pages: make(map[string]Page)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML file. A nil filesystem yields an
// empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{pages: make(map[string]Page)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Page returns the page registered under id.
func (s *Store) Page(id string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	page, ok := s.pages[id]
	return page, ok
}

// IDs lists the loaded page ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.pages))
	for id := range s.pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any pages.
func (s *Store) Empty() bool {
	return s == nil || len(s.pages) == 0
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawID, raw := range doc.Pages {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("config: file %s defines an empty page id", source)
		}
		if _, exists := s.pages[id]; exists {
			return fmt.Errorf("config: duplicate page %q (file %s)", id, source)
		}
		page, err := normalisePage(raw, id, source)
		if err != nil {
			return err
		}
		s.pages[id] = page
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func normalisePage(raw Page, id, source string) (Page, error) {
	page := raw
	page.ID = id
	page.Source = source
	page.Method = normaliseMethod(raw.Method)
	if strings.TrimSpace(page.SubmitLabel) == "" {
		page.SubmitLabel = "Submit"
	}
	if len(raw.Hidden) > 0 {
		page.Hidden = make(map[string]string, len(raw.Hidden))
		for key, value := range raw.Hidden {
			page.Hidden[key] = value
		}
	}

	seen := make(map[string]struct{}, len(raw.Widgets))
	page.Widgets = make([]Widget, 0, len(raw.Widgets))
	for idx, widget := range raw.Widgets {
		widget.Name = strings.TrimSpace(widget.Name)
		widget.Kind = strings.ToLower(strings.TrimSpace(widget.Kind))
		if widget.Name == "" {
			return Page{}, fmt.Errorf("config: page %q (file %s) widget %d has no name", id, source, idx)
		}
		if strings.ContainsAny(widget.Name, ".:") {
			return Page{}, fmt.Errorf("config: page %q (file %s) widget name %q must not contain '.' or ':'", id, source, widget.Name)
		}
		if widget.Kind == "" {
			return Page{}, fmt.Errorf("config: page %q (file %s) widget %q has no kind", id, source, widget.Name)
		}
		if _, dup := seen[widget.Name]; dup {
			return Page{}, fmt.Errorf("config: page %q (file %s) defines duplicate widget %q", id, source, widget.Name)
		}
		if _, dup := page.Hidden[widget.Name]; dup {
			return Page{}, fmt.Errorf("config: page %q (file %s) hidden field %q collides with a widget", id, source, widget.Name)
		}
		seen[widget.Name] = struct{}{}

		widget.AddIcon = SanitizeIcon(widget.AddIcon)
		widget.RemoveIcon = SanitizeIcon(widget.RemoveIcon)
		if _, err := widget.InitialJSON(); err != nil {
			return Page{}, err
		}
		page.Widgets = append(page.Widgets, widget)
	}
	return page, nil
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
