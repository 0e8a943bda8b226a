package listedit_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-listedit/pkg/listedit"
)

func TestNewInfo_EmptyPayload(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, "")
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	if editor.Len() != 0 {
		t.Fatalf("expected no rows, got %d", editor.Len())
	}

	got, err := editor.SerializeJSON()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got != "[]" {
		t.Fatalf("expected empty array payload, got %q", got)
	}
}

func TestNew_MalformedPayload(t *testing.T) {
	_, err := listedit.NewInfo(listedit.Config{Name: "info"}, `["unterminated`)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var parseErr *listedit.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Widget != "info" {
		t.Fatalf("expected widget name on parse error, got %q", parseErr.Widget)
	}

	if _, err := listedit.NewSlots(listedit.Config{Name: "slot"}, `{"not":"a list"}`); !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError for object payload, got %v", err)
	}
}

func TestNew_RejectsReservedNames(t *testing.T) {
	for _, name := range []string{"", "  ", "a.b", "a:b"} {
		if _, err := listedit.NewInfo(listedit.Config{Name: name}, ""); err == nil {
			t.Fatalf("expected error for widget name %q", name)
		}
	}
}

func TestNew_HiddenFieldStartsWithInitialPayload(t *testing.T) {
	initial := `[ "A", "B" ]`
	editor, err := listedit.NewInfo(listedit.Config{Name: "info"}, initial)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	hidden := editor.HiddenField()
	if hidden.Name != "info" || hidden.Value != initial {
		t.Fatalf("unexpected hidden field before serialize: %+v", hidden)
	}

	if _, err := editor.Serialize(); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got := editor.HiddenField().Value; got != `["A","B"]` {
		t.Fatalf("expected compact payload after serialize, got %q", got)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	info, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, `["A","B","C"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	gotInfo, err := info.Serialize()
	if err != nil {
		t.Fatalf("serialize info: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, gotInfo); diff != "" {
		t.Fatalf("info round trip mismatch (-want +got):\n%s", diff)
	}
	if got := info.HiddenField().Value; got != `["A","B","C"]` {
		t.Fatalf("unexpected info payload %q", got)
	}

	slots, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: true}, `[["5/31 5pm",2],["6/1 6pm",0]]`)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	gotSlots, err := slots.Serialize()
	if err != nil {
		t.Fatalf("serialize slots: %v", err)
	}
	wantSlots := []listedit.Slot{
		listedit.NewSlot("5/31 5pm", 2),
		listedit.NewSlot("6/1 6pm", 0),
	}
	if diff := cmp.Diff(wantSlots, gotSlots); diff != "" {
		t.Fatalf("slot round trip mismatch (-want +got):\n%s", diff)
	}
	if got := slots.HiddenField().Value; got != `[["5/31 5pm",2],["6/1 6pm",0]]` {
		t.Fatalf("unexpected slot payload %q", got)
	}

	for _, raw := range []string{
		`[["L",3000000000]]`,
		`[["<b>Q&A</b>",2]]`,
	} {
		slots, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: true}, raw)
		if err != nil {
			t.Fatalf("new slots %s: %v", raw, err)
		}
		got, err := slots.SerializeJSON()
		if err != nil {
			t.Fatalf("serialize %s: %v", raw, err)
		}
		if got != raw {
			t.Fatalf("round trip mismatch: in=%s out=%s", raw, got)
		}
	}

	markup, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, `["<b>&"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	if got, _ := markup.SerializeJSON(); got != `["<b>&"]` {
		t.Fatalf("expected unescaped payload, got %q", got)
	}
}

func TestSerialize_Idempotent(t *testing.T) {
	editor, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: true}, `[["A",1],["B",null]]`)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	first, err := editor.SerializeJSON()
	if err != nil {
		t.Fatalf("first serialize: %v", err)
	}
	second, err := editor.SerializeJSON()
	if err != nil {
		t.Fatalf("second serialize: %v", err)
	}
	if first != second {
		t.Fatalf("serialize not idempotent: %q vs %q", first, second)
	}
	if first != `[["A",1],["B",null]]` {
		t.Fatalf("unexpected payload %q", first)
	}
}

func TestAddRowThenSerialize(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, "[]")
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	row := editor.AddBlank()
	if got := row.Get(listedit.InfoColumn); got != "" {
		t.Fatalf("expected blank row, got %q", got)
	}
	if err := editor.Set(row.ID(), listedit.InfoColumn, "X"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := editor.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]string{"X"}, got); diff != "" {
		t.Fatalf("serialized mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveRowThenSerialize(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{Name: "info", Editable: true}, `["A","B"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	rows := editor.Rows()
	if len(rows) != 2 || rows[1].Get(listedit.InfoColumn) != "B" {
		t.Fatalf("unexpected rows: %d", len(rows))
	}
	if err := editor.Remove(rows[1].ID()); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got, err := editor.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]string{"A"}, got); diff != "" {
		t.Fatalf("serialized mismatch (-want +got):\n%s", diff)
	}

	if err := editor.Remove(rows[1].ID()); !errors.Is(err, listedit.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound removing twice, got %v", err)
	}
}

func TestSlotPairing(t *testing.T) {
	editor, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: true}, "[]")
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	row := editor.AddBlank()
	if got := row.Get(listedit.SlotLimitColumn); got != "1" {
		t.Fatalf("expected blank limit 1, got %q", got)
	}
	if err := editor.Set(row.ID(), listedit.SlotLabelColumn, "L"); err != nil {
		t.Fatalf("set label: %v", err)
	}
	if err := editor.Set(row.ID(), listedit.SlotLimitColumn, "3"); err != nil {
		t.Fatalf("set limit: %v", err)
	}

	got, err := editor.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]listedit.Slot{listedit.NewSlot("L", 3)}, got); diff != "" {
		t.Fatalf("slot mismatch (-want +got):\n%s", diff)
	}
	if payload := editor.HiddenField().Value; payload != `[["L",3]]` {
		t.Fatalf("unexpected payload %q", payload)
	}
}

func TestSlotMalformedCapacityIsCoerced(t *testing.T) {
	editor, err := listedit.NewSlots(listedit.Config{Name: "slot", Editable: true}, "")
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	row := editor.AddBlank()
	_ = editor.Set(row.ID(), listedit.SlotLabelColumn, "L")
	_ = editor.Set(row.ID(), listedit.SlotLimitColumn, "many")

	got, err := editor.SerializeJSON()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got != `[["L",null]]` {
		t.Fatalf("expected null capacity, got %q", got)
	}
}

func TestReadOnlyEditor(t *testing.T) {
	editor, err := listedit.NewSlots(listedit.Config{Name: "slot"}, `[["A",2]]`)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}

	widget := editor.Model()
	if widget.Editable || widget.AddAction != "" {
		t.Fatalf("read-only widget must not expose an add action: %+v", widget)
	}
	if len(widget.Rows) != 1 || widget.Rows[0].RemoveAction != "" {
		t.Fatalf("read-only rows must not expose remove actions: %+v", widget.Rows)
	}
	if cells := widget.Rows[0].Cells; cells[0].Disabled || !cells[1].Disabled {
		t.Fatalf("expected only the limit input disabled: %+v", cells)
	}

	row := editor.Rows()[0]
	if err := editor.Remove(row.ID()); !errors.Is(err, listedit.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly on remove, got %v", err)
	}
	if err := editor.Set(row.ID(), listedit.SlotLimitColumn, "9"); !errors.Is(err, listedit.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly on disabled column, got %v", err)
	}
	if err := editor.Set(row.ID(), "nope", "9"); !errors.Is(err, listedit.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if _, err := editor.Apply(listedit.Action{Widget: "slot", Verb: listedit.VerbAdd}); !errors.Is(err, listedit.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly on add action, got %v", err)
	}

	got, err := editor.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff([]listedit.Slot{listedit.NewSlot("A", 2)}, got); diff != "" {
		t.Fatalf("read-only value changed (-want +got):\n%s", diff)
	}
}

func TestModelProjection(t *testing.T) {
	editor, err := listedit.NewInfo(listedit.Config{
		Name:         "groups",
		Editable:     true,
		Placeholders: map[string]string{listedit.InfoColumn: "Team"},
	}, `["A"]`)
	if err != nil {
		t.Fatalf("new info: %v", err)
	}
	row := editor.Rows()[0]
	widget := editor.Model()

	if widget.AddAction != "groups:add" {
		t.Fatalf("unexpected add action %q", widget.AddAction)
	}
	if widget.Add.Label != "Add" || widget.Remove.Label != "Delete" {
		t.Fatalf("unexpected control labels: %+v %+v", widget.Add, widget.Remove)
	}
	got := widget.Rows[0]
	if got.RemoveAction != "groups:remove:"+row.ID() {
		t.Fatalf("unexpected remove action %q", got.RemoveAction)
	}
	if got.IDName != "groups.rows.0.id" {
		t.Fatalf("unexpected id input name %q", got.IDName)
	}
	cell := got.Cells[0]
	if cell.Name != "groups.rows.0.value" || cell.Value != "A" {
		t.Fatalf("unexpected cell %+v", cell)
	}
	if cell.Column.Class != "groups" || cell.Column.Placeholder != "Team" {
		t.Fatalf("unexpected column %+v", cell.Column)
	}
}
