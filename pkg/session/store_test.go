package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemory_GetSetDelete(t *testing.T) {
	store := NewMemory()

	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected missing key to report ok=false")
	}

	store.Set("b", 2)
	store.Set("a", "one")
	if got, ok := store.Get("a"); !ok || got != "one" {
		t.Fatalf("get a: got %v (ok=%v)", got, ok)
	}
	if diff := cmp.Diff([]string{"a", "b"}, store.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	store.Delete("a")
	if store.Len() != 1 {
		t.Fatalf("expected 1 key after delete, got %d", store.Len())
	}
}

func TestWidgetState_EndPassDropsUnrenderedKeys(t *testing.T) {
	state := NewWidgetState()

	state.BeginPass()
	state.Set("q1", "a")
	state.Set("q2", "b")
	if removed := state.EndPass(); len(removed) != 0 {
		t.Fatalf("expected nothing removed on first pass, got %v", removed)
	}

	state.BeginPass()
	state.Touch("q1")
	removed := state.EndPass()
	if diff := cmp.Diff([]string{"q2"}, removed); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
	if _, ok := state.Get("q2"); ok {
		t.Fatalf("expected q2 to be forgotten")
	}
	if got, ok := state.Get("q1"); !ok || got != "a" {
		t.Fatalf("expected q1 to survive, got %v (ok=%v)", got, ok)
	}
}
