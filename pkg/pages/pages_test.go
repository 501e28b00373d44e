package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/session"
)

type buttonHost struct {
	session *session.Memory
	widgets *session.Memory
	clicks  map[string]bool
	drawn   []render.Widget
}

func newButtonHost() *buttonHost {
	return &buttonHost{
		session: session.NewMemory(),
		widgets: session.NewMemory(),
		clicks:  map[string]bool{},
	}
}

func (h *buttonHost) Session() session.Store { return h.session }
func (h *buttonHost) Widgets() session.Store { return h.widgets }

func (h *buttonHost) Render(_ context.Context, w render.Widget) (any, error) {
	h.drawn = append(h.drawn, w)
	if w.Kind == render.KindButton {
		clicked := h.clicks[w.Key]
		delete(h.clicks, w.Key)
		return clicked, nil
	}
	return w.Value, nil
}

type navHost struct {
	*buttonHost
	action render.Action
	seen   []render.Navigation
}

func (h *navHost) Navigate(_ context.Context, nav render.Navigation) (render.Action, error) {
	h.seen = append(h.seen, nav)
	action := h.action
	h.action = render.ActionNone
	return action, nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, 2); err == nil {
		t.Fatalf("expected error for nil host")
	}
	if _, err := New(newButtonHost(), 0); err == nil {
		t.Fatalf("expected error for zero pages")
	}
}

func TestNextPrevious_StayInBounds(t *testing.T) {
	p, err := New(newButtonHost(), 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.Current() != 0 || !p.IsFirst() {
		t.Fatalf("expected first page")
	}

	p.Previous()
	if p.Current() != 0 {
		t.Fatalf("previous on first page should be a no-op")
	}
	for i := 0; i < 5; i++ {
		p.Next()
	}
	if p.Current() != 2 || !p.IsLast() {
		t.Fatalf("expected to stop on last page, got %d", p.Current())
	}
	p.Previous()
	if p.Current() != 1 {
		t.Fatalf("expected page 1, got %d", p.Current())
	}
}

func TestUpdate_RejectsOutOfRange(t *testing.T) {
	p, _ := New(newButtonHost(), 3)
	if err := p.Update(2); err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, index := range []int{-1, 3} {
		err := p.Update(index)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("index %d: expected range error, got %v", index, err)
		}
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) || rangeErr.Index != index || rangeErr.Pages != 3 {
			t.Fatalf("index %d: unexpected error %#v", index, err)
		}
	}
	if p.Current() != 2 {
		t.Fatalf("failed update changed the index to %d", p.Current())
	}
}

func TestCurrent_ClampsStaleIndex(t *testing.T) {
	host := newButtonHost()
	host.session.Set(DefaultKey, 7)
	p, _ := New(host, 2)
	if got := p.Current(); got != 1 {
		t.Fatalf("expected clamped index 1, got %d", got)
	}
}

func TestProgress(t *testing.T) {
	single, _ := New(newButtonHost(), 1)
	if single.Progress() != 0 {
		t.Fatalf("single page progress should be 0")
	}

	p, _ := New(newButtonHost(), 5)
	var got []float64
	for i := 0; i < 5; i++ {
		got = append(got, p.Progress())
		p.Next()
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestLabel_FallsBackToIndex(t *testing.T) {
	p, _ := New(newButtonHost(), 3, WithLabels("Intro", "Details"))
	labels := []string{}
	for i := 0; i < 3; i++ {
		labels = append(labels, p.Label())
		p.Next()
	}
	if diff := cmp.Diff([]string{"Intro", "Details", "2"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestEnd_ButtonsNavigate(t *testing.T) {
	host := newButtonHost()
	ctx := context.Background()
	p, _ := New(host, 3)

	host.clicks[p.NextKey()] = true
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if p.Current() != 1 {
		t.Fatalf("expected next to advance, got %d", p.Current())
	}

	host.clicks[p.PreviousKey()] = true
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if p.Current() != 0 {
		t.Fatalf("expected previous to go back, got %d", p.Current())
	}

	// disabled previous on the first page is ignored
	host.drawn = nil
	host.clicks[p.PreviousKey()] = true
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if p.Current() != 0 {
		t.Fatalf("expected to stay on first page, got %d", p.Current())
	}
	if !host.drawn[0].Options.Disabled {
		t.Fatalf("expected previous button disabled on first page")
	}
}

func TestEnd_SubmitOnlyOnLastPage(t *testing.T) {
	host := newButtonHost()
	ctx := context.Background()
	calls := 0
	p, _ := New(host, 2, WithOnSubmit(func() { calls++ }), WithButtonLabels("", "", "Send"))

	host.clicks[p.NextKey()] = true
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if calls != 0 {
		t.Fatalf("next must not submit")
	}
	if p.Current() != 1 {
		t.Fatalf("expected last page, got %d", p.Current())
	}

	host.drawn = nil
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if calls != 0 {
		t.Fatalf("submit fired without a click")
	}
	keys := []string{}
	for _, w := range host.drawn {
		keys = append(keys, w.Key)
	}
	if diff := cmp.Diff([]string{p.PreviousKey(), p.SubmitKey()}, keys); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
	if host.drawn[1].Label != "Send" {
		t.Fatalf("expected custom submit label, got %q", host.drawn[1].Label)
	}

	host.clicks[p.SubmitKey()] = true
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one submit, got %d", calls)
	}
}

func TestEnd_NoCallbackShowsDisabledNext(t *testing.T) {
	host := newButtonHost()
	p, _ := New(host, 2)
	_ = p.Update(1)

	host.clicks[p.NextKey()] = true
	if err := p.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}
	last := host.drawn[len(host.drawn)-1]
	if last.Key != p.NextKey() || !last.Options.Disabled {
		t.Fatalf("expected disabled next button, got %#v", last)
	}
	if p.Current() != 1 {
		t.Fatalf("expected to stay on last page")
	}
}

func TestEnd_DrawsProgress(t *testing.T) {
	host := newButtonHost()
	p, _ := New(host, 3, WithProgressBar(true))
	_ = p.Update(1)

	if err := p.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}
	last := host.drawn[len(host.drawn)-1]
	if last.Kind != render.KindProgress || last.Value != 0.5 {
		t.Fatalf("expected progress 0.5, got %#v", last)
	}
}

func TestEnd_UsesNavigator(t *testing.T) {
	host := &navHost{buttonHost: newButtonHost()}
	ctx := context.Background()
	submitted := 0
	p, _ := New(host, 2, WithOnSubmit(func() { submitted++ }), WithProgressBar(true), WithLabels("One", "Two"))

	host.action = render.ActionSubmit
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if submitted != 0 {
		t.Fatalf("submit before the last page must be ignored")
	}

	host.action = render.ActionNext
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	host.action = render.ActionSubmit
	if err := p.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	if submitted != 1 {
		t.Fatalf("expected a single submit, got %d", submitted)
	}
	if len(host.drawn) != 0 {
		t.Fatalf("navigator hosts draw their own controls, got %#v", host.drawn)
	}

	want := render.Navigation{
		Key:           DefaultKey,
		Page:          1,
		Pages:         2,
		Label:         "Two",
		CanPrevious:   true,
		CanSubmit:     true,
		PreviousLabel: "Previous",
		NextLabel:     "Next",
		SubmitLabel:   "Submit",
		ShowProgress:  true,
		Progress:      1,
	}
	if diff := cmp.Diff(want, host.seen[2]); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
}

func TestEnd_CustomButtonsOverrideNavigator(t *testing.T) {
	host := &navHost{buttonHost: newButtonHost()}
	p, _ := New(host, 2, WithNextButton(func(context.Context, *Pages) (bool, error) {
		return true, nil
	}))

	if err := p.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}
	if len(host.seen) != 0 {
		t.Fatalf("navigator should not be used with custom buttons")
	}
	if p.Current() != 1 {
		t.Fatalf("expected custom next to advance, got %d", p.Current())
	}
}

func TestRun_SkipsEndOnError(t *testing.T) {
	host := newButtonHost()
	p, _ := New(host, 2)
	boom := errors.New("boom")

	err := p.Run(context.Background(), func(*Pages) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected body error, got %v", err)
	}
	if len(host.drawn) != 0 {
		t.Fatalf("navigation drawn after failing body")
	}
}
