package component

import (
	"context"
	"errors"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	started  bool
	stopped  bool
	stopSeq  *[]string
}

func (f *fakeComponent) Name() string { return f.name }
func (f *fakeComponent) Start(ctx context.Context) error {
	f.started = true
	return f.startErr
}
func (f *fakeComponent) Stop(ctx context.Context) error {
	f.stopped = true
	if f.stopSeq != nil {
		*f.stopSeq = append(*f.stopSeq, f.name)
	}
	return f.stopErr
}
func (f *fakeComponent) Health(ctx context.Context) Health {
	return Health{Name: f.name, Status: StatusHealthy}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "db"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "db"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestStartAllStopsAtFirstFailure(t *testing.T) {
	r := NewRegistry()
	a := &fakeComponent{name: "a"}
	b := &fakeComponent{name: "b", startErr: errors.New("refused")}
	c := &fakeComponent{name: "c"}
	for _, cmp := range []*fakeComponent{a, b, c} {
		if err := r.Register(cmp); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected StartAll to fail")
	}
	if !a.started || !b.started {
		t.Error("components before the failure should have been started")
	}
	if c.started {
		t.Error("components after the failure must not start")
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry()
	var seq []string
	a := &fakeComponent{name: "pool", stopSeq: &seq}
	b := &fakeComponent{name: "server", stopSeq: &seq}
	if err := r.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(b); err != nil {
		t.Fatal(err)
	}
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(seq) != 2 || seq[0] != "server" || seq[1] != "pool" {
		t.Errorf("expected reverse stop order [server pool], got %v", seq)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry()
	a := &fakeComponent{name: "a"}
	if err := r.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.stopped {
		t.Error("unstarted component should not be stopped")
	}
}

func TestMarkStartedEnablesStop(t *testing.T) {
	r := NewRegistry()
	a := &fakeComponent{name: "pool"}
	if err := r.Register(a); err != nil {
		t.Fatal(err)
	}
	r.MarkStarted("pool")
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !a.stopped {
		t.Error("marked component should be stopped")
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "db"}); err != nil {
		t.Fatal(err)
	}
	results := r.HealthAll(context.Background())
	if len(results) != 1 || results[0].Name != "db" {
		t.Errorf("unexpected health results: %v", results)
	}
}
