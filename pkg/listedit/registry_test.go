package listedit_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/model"
)

func TestDefaultRegistryBuildsKinds(t *testing.T) {
	registry := listedit.NewDefaultRegistry()
	if diff := cmp.Diff([]string{model.KindInfo, model.KindSlot}, registry.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	widget, err := registry.Build(" SLOT ", listedit.Config{Name: "slot", Editable: true}, `[["A",1]]`)
	if err != nil {
		t.Fatalf("build slot: %v", err)
	}
	if widget.Kind() != model.KindSlot || widget.Len() != 1 {
		t.Fatalf("unexpected widget kind=%s len=%d", widget.Kind(), widget.Len())
	}

	if _, err := registry.Build("calendar", listedit.Config{Name: "cal"}, ""); !errors.Is(err, listedit.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := listedit.NewDefaultRegistry()
	err := registry.Register("info", func(cfg listedit.Config, initialJSON string) (listedit.Widget, error) {
		return listedit.NewInfo(cfg, initialJSON)
	})
	if err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register("", nil); err == nil {
		t.Fatalf("expected error for empty kind")
	}
}
