package httpapi

import (
	"context"
	"errors"
	"testing"
	"time"
)

type ctxKey struct{}

func waitDone(t *testing.T, ctx context.Context, what string) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("%s: joined context still live", what)
	}
}

func TestJoinContextsBaseCancel(t *testing.T) {
	drainErr := errors.New("draining")
	base, stopBase := context.WithCancelCause(context.Background())
	req := context.WithValue(context.Background(), ctxKey{}, "req-1")

	ctx, cancel := joinContexts(base, req)
	defer cancel()
	if got := ctx.Value(ctxKey{}); got != "req-1" {
		t.Fatalf("request value lost: %v", got)
	}
	stopBase(drainErr)
	waitDone(t, ctx, "base canceled")
	if !errors.Is(context.Cause(ctx), drainErr) {
		t.Fatalf("cause = %v, want %v", context.Cause(ctx), drainErr)
	}
}

func TestJoinContextsRequestCancel(t *testing.T) {
	req, cancelReq := context.WithCancel(context.Background())
	ctx, cancel := joinContexts(context.Background(), req)
	defer cancel()
	cancelReq()
	waitDone(t, ctx, "client gone")
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatalf("err = %v", ctx.Err())
	}
}

func TestJoinContextsReleaseLeavesParentsAlone(t *testing.T) {
	base, stopBase := context.WithCancel(context.Background())
	defer stopBase()
	req, cancelReq := context.WithCancel(context.Background())
	defer cancelReq()

	ctx, cancel := joinContexts(base, req)
	cancel()
	waitDone(t, ctx, "released")
	if base.Err() != nil || req.Err() != nil {
		t.Fatal("releasing the join must not cancel either parent")
	}
}

func TestSetBaseContextNilRestoresBackground(t *testing.T) {
	t.Cleanup(func() { SetBaseContext(nil) })
	done, cancel := context.WithCancel(context.Background())
	cancel()
	SetBaseContext(done)
	if serverBaseCtx.Err() == nil {
		t.Fatal("base context not installed")
	}
	//nolint:staticcheck // nil is the documented reset
	SetBaseContext(nil)
	if serverBaseCtx.Err() != nil || serverBaseCtx.Done() != nil {
		t.Fatal("nil should restore context.Background")
	}
}
