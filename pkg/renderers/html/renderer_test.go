package html_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/renderers/html"
	"github.com/goliatone/go-listedit/pkg/testsupport"
)

func signupPage(t *testing.T, editable bool) model.Page {
	t.Helper()

	info, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: editable, Label: "Groups"}, `["A","B"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	slots, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: editable}, `[["Mon 5pm",3]]`)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	return model.Page{
		ID:      "signup",
		Action:  "/signup",
		Widgets: []model.Widget{info.Model(), slots.Model()},
	}
}

func renderPage(t *testing.T, page model.Page, opts render.RenderOptions) *goquery.Document {
	t.Helper()

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), page, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return testsupport.MustParseHTML(t, output)
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderer_HiddenPayloadAndRows(t *testing.T) {
	doc := renderPage(t, signupPage(t, true), render.RenderOptions{})

	form := doc.Find("form")
	if got := testsupport.Attr(t, form, "method"); got != "post" {
		t.Fatalf("expected default method post, got %q", got)
	}
	if got := testsupport.Attr(t, form, "action"); got != "/signup" {
		t.Fatalf("unexpected action %q", got)
	}

	if got := testsupport.Attr(t, doc.Find(`input[type="hidden"][name="info"]`), "value"); got != `["A","B"]` {
		t.Fatalf("unexpected info payload %q", got)
	}
	if got := testsupport.Attr(t, doc.Find(`input[type="hidden"][name="slot"]`), "value"); got != `[["Mon 5pm",3]]` {
		t.Fatalf("unexpected slot payload %q", got)
	}

	var infos []string
	doc.Find("input.info").Each(func(_ int, sel *goquery.Selection) {
		value, _ := sel.Attr("value")
		infos = append(infos, value)
	})
	if diff := cmp.Diff([]string{"A", "B"}, infos); diff != "" {
		t.Fatalf("info inputs mismatch (-want +got):\n%s", diff)
	}

	if got := testsupport.Attr(t, doc.Find("input.info").First(), "name"); got != "info.rows.0.value" {
		t.Fatalf("unexpected info input name %q", got)
	}
	if got := testsupport.Attr(t, doc.Find("input.info").First(), "placeholder"); got != "Group Name" {
		t.Fatalf("unexpected placeholder %q", got)
	}
	if got := testsupport.Attr(t, doc.Find("input.slot_name"), "value"); got != "Mon 5pm" {
		t.Fatalf("unexpected slot label %q", got)
	}
	limit := doc.Find("input.slot_limit")
	if got := testsupport.Attr(t, limit, "value"); got != "3" {
		t.Fatalf("unexpected slot limit %q", got)
	}
	if _, disabled := limit.Attr("disabled"); disabled {
		t.Fatalf("slot limit should be editable")
	}
	if !strings.Contains(doc.Find(`[data-list-widget="slot"] .listedit-row`).Text(), "slots") {
		t.Fatalf("expected connector text after limit input")
	}
	if got := doc.Find(".listedit-label").Text(); got != "Groups" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestRenderer_EditableAffordances(t *testing.T) {
	page := signupPage(t, true)
	doc := renderPage(t, page, render.RenderOptions{})

	if got := doc.Find(`button[value="info:add"]`).Length(); got != 1 {
		t.Fatalf("expected one add button for info, got %d", got)
	}
	if got := doc.Find(`button[value="slot:add"]`).Length(); got != 1 {
		t.Fatalf("expected one add button for slot, got %d", got)
	}

	first := page.Widgets[0].Rows[0]
	remove := doc.Find(`button[value="` + first.RemoveAction + `"]`)
	if remove.Length() != 1 {
		t.Fatalf("expected remove button for row %s", first.ID)
	}
	if got := testsupport.Attr(t, remove, "name"); got != model.ActionField {
		t.Fatalf("unexpected action field %q", got)
	}
	if remove.Find("i.icon-remove").Length() != 1 {
		t.Fatalf("expected remove icon markup to be rendered unescaped")
	}

	// The add control follows the rows so new rows land before it.
	last := doc.Find(`[data-list-widget="info"]`).Children().Last()
	if val, _ := last.Attr("value"); val != "info:add" {
		html, _ := goquery.OuterHtml(last)
		t.Fatalf("expected add button after the rows, got %s", html)
	}
}

func TestRenderer_ReadOnlyMode(t *testing.T) {
	doc := renderPage(t, signupPage(t, false), render.RenderOptions{})

	if got := doc.Find(`button[value$=":add"]`).Length(); got != 0 {
		t.Fatalf("expected no add buttons, got %d", got)
	}
	if got := doc.Find(`button[value*=":remove:"]`).Length(); got != 0 {
		t.Fatalf("expected no remove buttons, got %d", got)
	}
	if _, disabled := doc.Find("input.slot_limit").Attr("disabled"); !disabled {
		t.Fatalf("expected slot limit to be disabled in read-only mode")
	}
	if _, disabled := doc.Find("input.slot_name").Attr("disabled"); disabled {
		t.Fatalf("slot label stays enabled in read-only mode")
	}
	if _, editable := doc.Find(`[data-list-widget="info"]`).Attr("data-list-editable"); editable {
		t.Fatalf("read-only widget must not be marked editable")
	}
}

func TestRenderer_DefaultSubmitPrecedesRowActions(t *testing.T) {
	doc := renderPage(t, signupPage(t, true), render.RenderOptions{})

	first := doc.Find(`button[type="submit"]`).First()
	if got := testsupport.Attr(t, first, "value"); got != "" {
		t.Fatalf("expected the implicit submit button to carry no action, got %q", got)
	}
}

func TestRenderer_ErrorsAndHiddenFields(t *testing.T) {
	page := signupPage(t, true)
	doc := renderPage(t, page, render.RenderOptions{
		Errors: map[string][]string{
			"":                  {"Please review the form"},
			"slot":              {"At least one slot required"},
			"slot.rows.0.limit": {"must be >= 0"},
			"info.rows.1":       {"duplicate group"},
		},
		HiddenFields: map[string]string{"csrf": "token-1"},
	})

	if got := strings.TrimSpace(doc.Find(`form > .listedit-errors`).Text()); got != "Please review the form" {
		t.Fatalf("unexpected form errors %q", got)
	}
	if got := testsupport.Attr(t, doc.Find(`input[name="csrf"]`), "value"); got != "token-1" {
		t.Fatalf("unexpected csrf value %q", got)
	}

	limit := doc.Find(`input[name="slot.rows.0.limit"]`)
	if got := testsupport.Attr(t, limit, "aria-invalid"); got != "true" {
		t.Fatalf("expected aria-invalid on slot limit, got %q", got)
	}
	if got := strings.TrimSpace(doc.Find(`[data-error-for="slot.rows.0.limit"]`).Text()); got != "must be >= 0" {
		t.Fatalf("unexpected cell error %q", got)
	}
	if !strings.Contains(doc.Find(`[data-list-widget="slot"]`).Text(), "At least one slot required") {
		t.Fatalf("expected widget error in slot block")
	}
	row := doc.Find(`[data-row-id="` + page.Widgets[0].Rows[1].ID + `"]`)
	if !strings.Contains(row.Text(), "duplicate group") {
		t.Fatalf("expected row error on second info row")
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	info, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, `["<script>x</script>"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), model.Page{Widgets: []model.Widget{info.Model()}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<script>") {
		t.Fatalf("expected row values to be escaped:\n%s", output)
	}
	doc := testsupport.MustParseHTML(t, output)
	if got := testsupport.Attr(t, doc.Find("input.info"), "value"); got != "<script>x</script>" {
		t.Fatalf("unexpected decoded value %q", got)
	}

	if _, err := info.SerializeJSON(); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	output, err = renderer.Render(testsupport.Context(), model.Page{Widgets: []model.Widget{info.Model()}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<script>") {
		t.Fatalf("expected hidden payload to be escaped:\n%s", output)
	}
	doc = testsupport.MustParseHTML(t, output)
	if got := testsupport.Attr(t, doc.Find(`input[type="hidden"][name="info"]`), "value"); got != `["<script>x</script>"]` {
		t.Fatalf("unexpected hidden payload %q", got)
	}
}

func TestRenderer_Theme(t *testing.T) {
	doc := renderPage(t, signupPage(t, true), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--list-gap": "4px", "--list-accent": "#0af"},
			AssetURL: func(key string) string {
				if key == html.AssetStylesheet {
					return "/static/acme/lists.css"
				}
				return ""
			},
		},
	})

	form := doc.Find("form")
	if got := testsupport.Attr(t, form, "data-theme"); got != "acme" {
		t.Fatalf("unexpected theme %q", got)
	}
	if got := testsupport.Attr(t, form, "data-theme-variant"); got != "dark" {
		t.Fatalf("unexpected variant %q", got)
	}
	if got := testsupport.Attr(t, form, "style"); got != "--list-accent: #0af; --list-gap: 4px" {
		t.Fatalf("unexpected css vars %q", got)
	}
	if got := testsupport.Attr(t, doc.Find(`link[rel="stylesheet"]`), "href"); got != "/static/acme/lists.css" {
		t.Fatalf("unexpected stylesheet %q", got)
	}
}

func TestRenderer_AssetURLPrefix(t *testing.T) {
	renderer, err := html.New(html.WithAssetURLPrefix("/assets/"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), signupPage(t, true), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.MustParseHTML(t, output)
	if got := testsupport.Attr(t, doc.Find(`link[rel="stylesheet"]`), "href"); got != "/assets/"+html.StylesheetName {
		t.Fatalf("unexpected stylesheet href %q", got)
	}
}

type stubTemplateRenderer struct {
	calls []string
	data  map[string]any
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	s.calls = append(s.calls, name)
	if payload, ok := data.(map[string]any); ok {
		s.data = payload
	}
	return "<" + name + ">", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}

func TestRenderer_ThemePartialOverrides(t *testing.T) {
	stub := &stubTemplateRenderer{}
	renderer, err := html.New(html.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), signupPage(t, true), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Partials: map[string]string{html.PartialWidget: "acme/widget.tmpl"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"acme/widget.tmpl", "acme/widget.tmpl", "templates/page.tmpl"}
	if diff := cmp.Diff(want, stub.calls); diff != "" {
		t.Fatalf("template calls mismatch (-want +got):\n%s", diff)
	}
	if string(output) != "<templates/page.tmpl>" {
		t.Fatalf("unexpected output %q", output)
	}
	widgets, _ := stub.data["widgets"].([]string)
	if diff := cmp.Diff([]string{"<acme/widget.tmpl>", "<acme/widget.tmpl>"}, widgets); diff != "" {
		t.Fatalf("widgets passed to page mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, signupPage(t, true), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
