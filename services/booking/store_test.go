package booking

import (
	"context"
	"reflect"
	"testing"
)

func TestMemoryStoreSnapshotsAreIsolated(t *testing.T) {
	store := NewMemoryWizardStore()
	ctx := context.Background()

	w := &Wizard{
		OwnerID: "chat-1",
		Step:    StepExtras,
		Draft:   validDraft(),
	}
	w.Draft.Extras = []string{"gps", "tam_kasko"}
	if err := store.Save(ctx, w); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// ToggleExtra removes in place; the stored wizard must not observe it.
	w.Draft.ToggleExtra("gps")
	if !reflect.DeepEqual(w.Draft.Extras, []string{"tam_kasko"}) {
		t.Fatalf("unexpected caller extras %v", w.Draft.Extras)
	}

	stored, err := store.Get(ctx, "chat-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(stored.Draft.Extras, []string{"gps", "tam_kasko"}) {
		t.Errorf("stored extras mutated through the caller's slice: %v", stored.Draft.Extras)
	}

	// And the other direction: mutating a Get snapshot leaves the store alone.
	stored.Draft.ToggleExtra("gps")
	again, err := store.Get(ctx, "chat-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(again.Draft.Extras, []string{"gps", "tam_kasko"}) {
		t.Errorf("stored extras mutated through a snapshot: %v", again.Draft.Extras)
	}
}
