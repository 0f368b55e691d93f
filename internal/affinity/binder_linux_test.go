//go:build linux

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedBinderPinsLockedThread(t *testing.T) {
	type result struct {
		want, got Mask
		err       error
	}
	done := make(chan result, 1)
	go func() {
		// The thread is left locked so the runtime discards it on exit
		// instead of reusing a pinned thread.
		runtime.LockOSThread()
		cur, err := Current()
		if err != nil || cur.IsEmpty() {
			done <- result{err: err}
			return
		}
		want := NewMask(cur.CPUs()[0])
		if err := DefaultBinder().Bind(want); err != nil {
			done <- result{err: err}
			return
		}
		got, err := Current()
		done <- result{want: want, got: got, err: err}
	}()
	r := <-done
	if r.err != nil {
		t.Skipf("affinity syscalls unavailable: %v", r.err)
	}
	assert.True(t, r.want.Equal(r.got), "want %s got %s", r.want, r.got)
}

func TestSchedBinderRejectsEmptyMask(t *testing.T) {
	require.ErrorIs(t, DefaultBinder().Bind(Mask{}), ErrEmptyMask)
}
