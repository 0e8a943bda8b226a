package listedit_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-listedit/pkg/listedit"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		raw     string
		want    listedit.Action
		wantErr bool
	}{
		{raw: "", want: listedit.Action{}},
		{raw: "info:add", want: listedit.Action{Widget: "info", Verb: listedit.VerbAdd}},
		{raw: "slot:remove:abc", want: listedit.Action{Widget: "slot", Verb: listedit.VerbRemove, RowID: "abc"}},
		{raw: "slot:remove", wantErr: true},
		{raw: "slot:add:abc", wantErr: true},
		{raw: "slot:rename", wantErr: true},
		{raw: ":add", wantErr: true},
		{raw: "submit", wantErr: true},
	}

	for _, tc := range cases {
		got, err := listedit.ParseAction(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, listedit.ErrUnknownAction) {
				t.Fatalf("ParseAction(%q): expected ErrUnknownAction, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseAction(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
		if got.String() != tc.raw {
			t.Fatalf("Action.String() = %q, want %q", got.String(), tc.raw)
		}
	}
}

func TestApply_IgnoresOtherWidgets(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, "")
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	applied, err := editor.Apply(listedit.Action{Widget: "slot", Verb: listedit.VerbAdd})
	if err != nil || applied {
		t.Fatalf("expected action for another widget to be skipped, got %v %v", applied, err)
	}

	applied, err = editor.Apply(listedit.Action{Widget: "info", Verb: listedit.VerbAdd})
	if err != nil || !applied {
		t.Fatalf("expected add to apply, got %v %v", applied, err)
	}
	if editor.Len() != 1 {
		t.Fatalf("expected one row after add, got %d", editor.Len())
	}

	row := editor.Rows()[0]
	applied, err = editor.Apply(listedit.Action{Widget: "info", Verb: listedit.VerbRemove, RowID: row.ID()})
	if err != nil || !applied {
		t.Fatalf("expected remove to apply, got %v %v", applied, err)
	}
	if editor.Len() != 0 {
		t.Fatalf("expected no rows after remove, got %d", editor.Len())
	}
}

func TestDecode_EditableRows(t *testing.T) {
	editor, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: true}, `[["A",2]]`)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	id := editor.Rows()[0].ID()

	values := url.Values{
		"slot":              {`[["A",2]]`},
		"slot.rows.0.id":    {id},
		"slot.rows.0.label": {"A2"},
		"slot.rows.0.limit": {"5"},
		"slot.rows.1.label": {"B"},
		"slot.rows.1.limit": {"x"},
		"info.rows.0.value": {"ignored"},
	}
	if err := editor.Decode(values); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rows := editor.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID() != id {
		t.Fatalf("expected posted row id to be kept")
	}
	if rows[1].ID() == "" || rows[1].ID() == id {
		t.Fatalf("expected a fresh id for the new row, got %q", rows[1].ID())
	}

	got, err := editor.SerializeJSON()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got != `[["A2",5],["B",null]]` {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestDecode_OrdersByIndex(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, "")
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	values := url.Values{
		"info.rows.10.value": {"third"},
		"info.rows.2.value":  {"second"},
		"info.rows.0.value":  {"first"},
	}
	if err := editor.Decode(values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := editor.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, got); diff != "" {
		t.Fatalf("decoded order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ReadOnlyKeepsDisabledColumns(t *testing.T) {
	editor, err := listedit.NewSlots(listedit.Config{Name: "slot"}, `[["A",2]]`)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	values := url.Values{
		"slot":              {`[["A",2]]`},
		"slot.rows.0.label": {"A!"},
		"slot.rows.0.limit": {"9"},
		"slot.rows.1.label": {"extra"},
	}
	if err := editor.Decode(values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := editor.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]listedit.Slot{listedit.NewSlot("A!", 2)}, got); diff != "" {
		t.Fatalf("read-only decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_HiddenOnly(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, `["old"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	if err := editor.Decode(url.Values{"info": {`["A","B"]`}}); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, editor.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if editor.Len() != 2 {
		t.Fatalf("expected rows rebuilt from hidden payload, got %d", editor.Len())
	}

	var parseErr *listedit.ParseError
	if err := editor.Decode(url.Values{"info": {`[`}}); !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestActionFromValues(t *testing.T) {
	action, err := listedit.ActionFromValues(url.Values{listedit.ActionField: {"slot:add"}})
	if err != nil {
		t.Fatalf("action from values: %v", err)
	}
	if action.Widget != "slot" || action.Verb != listedit.VerbAdd {
		t.Fatalf("unexpected action %+v", action)
	}

	action, err = listedit.ActionFromValues(url.Values{})
	if err != nil || !action.IsZero() {
		t.Fatalf("expected zero action, got %+v %v", action, err)
	}
}
