package resolver

import (
	"context"
	"testing"

	"consulnotifier/internal/core"
	"consulnotifier/pkg/errors"
)

type fakeRuntime struct {
	addrs   []string
	err     error
	queries int
}

func (f *fakeRuntime) Inspect(ctx context.Context, name string) (core.ContainerInfo, error) {
	return core.ContainerInfo{}, nil
}

func (f *fakeRuntime) Events(ctx context.Context) (<-chan core.Event, <-chan error) {
	return nil, nil
}

func (f *fakeRuntime) NodeAddresses(ctx context.Context) ([]string, error) {
	f.queries++
	return f.addrs, f.err
}

func TestSwarm_Resolve(t *testing.T) {
	rt := &fakeRuntime{addrs: []string{"10.0.0.1"}}
	s := NewSwarm(rt)

	addrs, err := s.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(addrs) != 1 || addrs[0] != "10.0.0.1" {
		t.Errorf("Expected the node address, got %v", addrs)
	}
}

func TestSwarm_ResolveRequeriesEveryCall(t *testing.T) {
	rt := &fakeRuntime{addrs: []string{"10.0.0.1"}}
	s := NewSwarm(rt)

	for i := 0; i < 3; i++ {
		if _, err := s.Resolve(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if rt.queries != 3 {
		t.Errorf("Expected 3 daemon queries, got %d", rt.queries)
	}
}

func TestSwarm_ResolveFailure(t *testing.T) {
	rt := &fakeRuntime{err: errors.NewError(errors.ErrorTypeUnavailable, "daemon unreachable")}
	s := NewSwarm(rt)

	if _, err := s.Resolve(context.Background()); err == nil {
		t.Fatal("Expected the query failure to surface")
	}
}
