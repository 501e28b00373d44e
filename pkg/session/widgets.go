package session

import "sync"

// WidgetState is the ephemeral per-widget bag of a host. Entries that are not
// written or touched between BeginPass and EndPass are dropped when the pass
// ends, the same way a reactive UI forgets widgets it stopped drawing.
type WidgetState struct {
	*Memory

	mu      sync.Mutex
	touched map[string]struct{}
}

// NewWidgetState returns an empty widget state.
func NewWidgetState() *WidgetState {
	return &WidgetState{
		Memory:  NewMemory(),
		touched: map[string]struct{}{},
	}
}

// BeginPass resets the set of widgets seen during the current pass.
func (w *WidgetState) BeginPass() {
	w.mu.Lock()
	w.touched = map[string]struct{}{}
	w.mu.Unlock()
}

// Touch marks key as rendered during the current pass.
func (w *WidgetState) Touch(key string) {
	w.mu.Lock()
	w.touched[key] = struct{}{}
	w.mu.Unlock()
}

// Set stores value and marks the key as rendered.
func (w *WidgetState) Set(key string, value any) {
	w.Memory.Set(key, value)
	w.Touch(key)
}

// EndPass removes every entry that was not touched since BeginPass and
// returns the removed keys in lexical order.
func (w *WidgetState) EndPass() []string {
	w.mu.Lock()
	touched := w.touched
	w.touched = map[string]struct{}{}
	w.mu.Unlock()

	var removed []string
	for _, key := range w.Keys() {
		if _, ok := touched[key]; ok {
			continue
		}
		w.Delete(key)
		removed = append(removed, key)
	}
	return removed
}
