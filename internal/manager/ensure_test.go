package manager

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"auracore/internal/affinity"
)

func TestGetOrCreate_ConcurrentConstructsOnce(t *testing.T) {
	a := &fakeAdapter{delay: 20 * time.Millisecond}
	m := newTestManager(t, a, nil)
	path := modelFile(t)

	const n = 32
	sessions := make([]*Session, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			s, err := m.GetOrCreate(context.Background(), path)
			sessions[i] = s
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), a.starts.Load())
	assert.Equal(t, uint64(1), m.Loads())
	for _, s := range sessions {
		assert.Same(t, sessions[0], s)
	}
	assert.True(t, m.Ready())
}

func TestGetOrCreate_DefaultParams(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, nil)
	_, err := m.GetOrCreate(context.Background(), modelFile(t))
	require.NoError(t, err)

	a.mu.Lock()
	p := a.lastParams
	a.mu.Unlock()
	assert.Equal(t, defaultSeed, p.Seed, "unset seed must be fixed, not random")
	assert.Equal(t, defaultContextSize, p.ContextSize)
	assert.Equal(t, defaultMaxTokens, p.MaxTokens)
}

func TestGetOrCreate_ExplicitSeedKept(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, func(c *ManagerConfig) { c.Params.Seed = -1 })
	_, err := m.GetOrCreate(context.Background(), modelFile(t))
	require.NoError(t, err)

	a.mu.Lock()
	defer a.mu.Unlock()
	assert.Equal(t, -1, a.lastParams.Seed)
}

func TestGetOrCreate_LoadFailureRetries(t *testing.T) {
	a := &fakeAdapter{}
	a.failNext.Store(1)
	pub := NewMemoryPublisher()
	m := newTestManager(t, a, nil)
	m.SetEventPublisher(pub)
	path := modelFile(t)

	_, err := m.GetOrCreate(context.Background(), path)
	require.Error(t, err)
	assert.True(t, IsModelLoadError(err))
	assert.Nil(t, m.Current())
	assert.False(t, m.Ready())
	assert.NotEmpty(t, m.LastError())

	s, err := m.GetOrCreate(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int32(2), a.starts.Load())
	assert.Empty(t, m.LastError())
	assert.Equal(t, []string{EventLoadFailed, EventSessionReady}, pub.Names())
}

func TestGetOrCreate_MissingModel(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, nil)

	_, err := m.GetOrCreate(context.Background(), filepath.Join(t.TempDir(), "absent.gguf"))
	require.Error(t, err)
	var le *ModelLoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, int32(0), a.starts.Load())
}

func TestGetOrCreate_DirectoryResolvesFirstModel(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, nil)
	path := modelFile(t)

	s, err := m.GetOrCreate(context.Background(), filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, path, s.ModelPath())
	assert.Equal(t, path, a.last().path)
}

func TestGetOrCreate_DifferentPathIgnored(t *testing.T) {
	a := &fakeAdapter{}
	pub := NewMemoryPublisher()
	m := newTestManager(t, a, nil)
	m.SetEventPublisher(pub)
	first := modelFile(t)
	second := modelFile(t)

	s1, err := m.GetOrCreate(context.Background(), first)
	require.NoError(t, err)
	s2, err := m.GetOrCreate(context.Background(), second)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, first, s2.ModelPath())
	assert.Equal(t, int32(1), a.starts.Load())
	assert.Contains(t, pub.Names(), EventModelPathIgnored)

	// Same path and empty path are not reported.
	before := len(pub.Events())
	_, _ = m.GetOrCreate(context.Background(), first)
	_, _ = m.GetOrCreate(context.Background(), "")
	assert.Len(t, pub.Events(), before)
}

func TestGetOrCreate_CanceledContext(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.GetOrCreate(ctx, modelFile(t))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), a.starts.Load())
}

func TestGetOrCreate_AffinityPlanAndThreads(t *testing.T) {
	a := &fakeAdapter{}
	var bound affinity.Mask
	m := newTestManager(t, a, func(c *ManagerConfig) {
		c.Binder = affinity.BinderFunc(func(mask affinity.Mask) error {
			bound = mask
			return nil
		})
	})

	s, err := m.GetOrCreate(context.Background(), modelFile(t))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, s.Mask().CPUs())
	assert.Equal(t, affinity.SourceTiered, s.Plan().Source)
	assert.True(t, bound.Equal(s.Mask()))
	assert.True(t, s.Pinned())
	assert.Equal(t, 2, s.Threads())
	assert.Equal(t, int32(2), a.last().threads.Load())
}

func TestGetOrCreate_ThreadOverride(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, func(c *ManagerConfig) { c.Threads = 6 })

	s, err := m.GetOrCreate(context.Background(), modelFile(t))
	require.NoError(t, err)
	assert.Equal(t, 6, s.Threads())
	assert.Equal(t, int32(6), a.last().threads.Load())
}

func TestGetOrCreate_TopologyFailureUsesAllCores(t *testing.T) {
	a := &fakeAdapter{}
	m := newTestManager(t, a, func(c *ManagerConfig) {
		c.Topology = stubTopology{err: errors.New("no sysfs")}
	})

	s, err := m.GetOrCreate(context.Background(), modelFile(t))
	require.NoError(t, err)
	assert.Equal(t, affinity.SourceFallback, s.Plan().Source)
	assert.Error(t, s.Plan().Warning)
	assert.False(t, s.Mask().IsEmpty())
}

func TestGetOrCreate_PinningDisabled(t *testing.T) {
	a := &fakeAdapter{}
	called := false
	m := newTestManager(t, a, func(c *ManagerConfig) {
		c.DisablePinning = true
		c.Binder = affinity.BinderFunc(func(affinity.Mask) error {
			called = true
			return nil
		})
	})

	s, err := m.GetOrCreate(context.Background(), modelFile(t))
	require.NoError(t, err)
	assert.False(t, s.Pinned())
	assert.False(t, called)
}
