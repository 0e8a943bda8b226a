package listedit

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestStylesheetFSContainsDefaultStylesheet(t *testing.T) {
	data, err := fs.ReadFile(StylesheetFS(), "listedit.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".listedit-row") {
		t.Fatalf("expected row styles in stylesheet")
	}
}

func TestEmbeddedTemplatesIncludePageAndWidget(t *testing.T) {
	for _, name := range []string{"templates/page.tmpl", "templates/widget.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestGenerateHTMLRendersEmbeddedSignupPage(t *testing.T) {
	out, err := GenerateHTML(context.Background(), "signup", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`name="info"`, `name="slot"`, `value="slot:add"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output", want)
		}
	}

	store, err := LoadPages(nil)
	if err != nil {
		t.Fatalf("load pages: %v", err)
	}
	if _, ok := store.Page("signup"); !ok {
		t.Fatalf("expected embedded signup page")
	}
}
