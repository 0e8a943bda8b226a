package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
)

func testPage() model.Page {
	return model.Page{
		Widgets: []model.Widget{
			{
				Name:    "info",
				Kind:    model.KindInfo,
				Columns: []model.Column{{Key: "value", Class: "info"}},
				Rows:    []model.Row{{Index: 0}},
			},
			{
				Name: "slot",
				Kind: model.KindSlot,
				Columns: []model.Column{
					{Key: "label", Class: "slot_name"},
					{Key: "limit", Class: "slot_limit"},
				},
				Rows: []model.Row{{Index: 0}, {Index: 1}},
			},
		},
	}
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/info":          {"At least one group is required"},
		"slot.rows.1.limit":   {"Capacity must be a number"},
		"/slot/0/1":           {"Capacity must not be negative"},
		"slot[1][slot_name]":  {"Label is required"},
		"slot/7/1":            {"Out of range row"},
		"non_field_errors":    {"Form level error"},
		"calendar/0":          {"Unknown widget"},
		"":                    {" Unscoped ", "Unscoped"},
		"slot.rows.0.unknown": {"  "},
	}

	mapped := render.MapErrorPayload(testPage(), payload)

	wantFields := map[string][]string{
		"info":              {"At least one group is required"},
		"slot.rows.1.limit": {"Capacity must be a number"},
		"slot.rows.0.limit": {"Capacity must not be negative"},
		"slot.rows.1.label": {"Label is required"},
		"slot":              {"Out of range row"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Unknown widget", "Unscoped"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	options := mapped.Options()
	if diff := cmp.Diff(mapped.Form, options[render.FormErrorsKey]); diff != "" {
		t.Fatalf("form errors not folded into options (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
