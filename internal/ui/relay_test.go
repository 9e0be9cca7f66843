package ui

import (
	"context"
	"testing"
	"time"

	"github.com/kisanportal/kisan/internal/prefs"
)

func TestSchemeRelay_LatestWins(t *testing.T) {
	r := NewSchemeRelay()

	done := make(chan struct{})
	go func() {
		r.Apply(prefs.SchemeDark)
		r.Apply(prefs.SchemeLight)
		r.Apply(prefs.SchemeDark)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Apply blocked with no reader")
	}

	if got := <-r.C(); got != prefs.SchemeDark {
		t.Fatalf("relay delivered %v, want dark", got)
	}
	select {
	case s := <-r.C():
		t.Fatalf("relay delivered extra scheme %v", s)
	default:
	}
}

func TestSignal_Coalesces(t *testing.T) {
	s := NewSignal()
	for i := 0; i < 5; i++ {
		s.Notify()
	}
	<-s.C()
	select {
	case <-s.C():
		t.Fatal("signal delivered twice")
	default:
	}
}

func TestListenScheme_ReturnsMsg(t *testing.T) {
	r := NewSchemeRelay()
	r.Apply(prefs.SchemeDark)

	msg := listenScheme(context.Background(), r)()
	if got, ok := msg.(schemeMsg); !ok || prefs.Scheme(got) != prefs.SchemeDark {
		t.Fatalf("listenScheme msg = %#v, want schemeMsg(dark)", msg)
	}
}

func TestListenSignal_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if msg := listenSignal(ctx, NewSignal())(); msg != nil {
		t.Fatalf("listenSignal after cancel = %#v, want nil", msg)
	}
	if cmd := listenSignal(ctx, nil); cmd != nil {
		t.Fatalf("listenSignal(nil) should return nil cmd")
	}
}
