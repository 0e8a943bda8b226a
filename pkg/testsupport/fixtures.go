package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// MustParseHTML parses rendered markup so assertions can use CSS selectors the
// same way the browser runtime addresses rows and inputs.
func MustParseHTML(t *testing.T, markup []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Attr returns an attribute of the first selected node, failing the test when
// it is missing.
func Attr(t *testing.T, sel *goquery.Selection, name string) string {
	t.Helper()

	value, ok := sel.First().Attr(name)
	if !ok {
		html, _ := goquery.OuterHtml(sel.First())
		t.Fatalf("attribute %q missing on %s", name, html)
	}
	return value
}
