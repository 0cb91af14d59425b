package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/tresor228/pitch-ia/models"
)

type fakeBinding struct {
	mu sync.Mutex

	triggerEnabled bool
	loading        bool
	sections       map[models.SectionKey]string
	pitchHTML      string
	revealed       int
	banners        []Banner
	inserted       []Banner
	copyLabel      string

	// loadingDuringCall capture l'état vu pendant l'appel réseau.
	loadingDuringCall bool
	triggerDuringCall bool
}

func newFakeBinding() *fakeBinding {
	return &fakeBinding{sections: map[models.SectionKey]string{}}
}

func (f *fakeBinding) SetTriggerEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggerEnabled = enabled
}

func (f *fakeBinding) SetLoading(loading bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = loading
}

func (f *fakeBinding) ClearSections() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range models.SectionKeys {
		f.sections[k] = ""
	}
}

func (f *fakeBinding) SetSection(key models.SectionKey, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sections[key] = text
}

func (f *fakeBinding) SetPitch(html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pitchHTML = html
}

func (f *fakeBinding) RevealResults() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revealed++
}

func (f *fakeBinding) InsertBanner(b Banner) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banners = append(f.banners, b)
	f.inserted = append(f.inserted, b)
}

func (f *fakeBinding) RemoveBanner(b Banner) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.banners {
		if cur.ID == b.ID {
			f.banners = append(f.banners[:i], f.banners[i+1:]...)
			return
		}
	}
}

func (f *fakeBinding) SetCopyLabel(label string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copyLabel = label
}

func (f *fakeBinding) visible(kind BannerKind) []Banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Banner
	for _, b := range f.banners {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// fakeScheduler ne déclenche les minuteurs que sur demande.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire exécute le minuteur i même s'il a été arrêté, pour simuler un Stop
// arrivé trop tard.
func (s *fakeScheduler) fire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	t.fired = true
	s.mu.Unlock()
	t.f()
}

// fireActive exécute tous les minuteurs non arrêtés.
func (s *fakeScheduler) fireActive() {
	s.mu.Lock()
	var pending []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			pending = append(pending, t)
		}
	}
	s.mu.Unlock()
	for _, t := range pending {
		t.f()
	}
}

func (s *fakeScheduler) active() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

type fakeTransport struct {
	ui    *fakeBinding
	resp  *models.PitchResponse
	err   error
	calls []models.PitchRequest
	block chan struct{}
}

func (t *fakeTransport) GeneratePitch(ctx context.Context, req models.PitchRequest) (*models.PitchResponse, error) {
	t.calls = append(t.calls, req)
	if t.ui != nil {
		t.ui.mu.Lock()
		t.ui.loadingDuringCall = t.ui.loading
		t.ui.triggerDuringCall = t.ui.triggerEnabled
		t.ui.mu.Unlock()
	}
	if t.block != nil {
		select {
		case <-t.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return t.resp, t.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}
