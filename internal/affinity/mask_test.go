package affinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMaskNormalizes(t *testing.T) {
	m := NewMask(3, 1, -2, 3, 0)
	assert.Equal(t, []int{0, 1, 3}, m.CPUs())
	assert.True(t, m.Contains(3))
	assert.False(t, m.Contains(2))
}

func TestMaskCPUsReturnsCopy(t *testing.T) {
	m := NewMask(1, 2)
	out := m.CPUs()
	out[0] = 99
	assert.Equal(t, []int{1, 2}, m.CPUs())
}

func TestMaskString(t *testing.T) {
	cases := map[string]Mask{
		"":          {},
		"0":         NewMask(0),
		"0-3":       FullMask(4),
		"0-2,4,6-7": NewMask(0, 1, 2, 4, 6, 7),
	}
	for want, m := range cases {
		assert.Equal(t, want, m.String())
	}
}

func TestMaskEqual(t *testing.T) {
	assert.True(t, NewMask(2, 1).Equal(NewMask(1, 2)))
	assert.False(t, NewMask(1).Equal(NewMask(1, 2)))
	assert.False(t, NewMask(1, 3).Equal(NewMask(1, 2)))
}

func TestFullMaskMinimumOne(t *testing.T) {
	assert.Equal(t, 1, FullMask(-5).Len())
}

func TestNoopBinder(t *testing.T) {
	assert.NoError(t, NoopBinder{}.Bind(NewMask(0)))
	called := false
	var b Binder = BinderFunc(func(Mask) error { called = true; return ErrUnsupported })
	assert.ErrorIs(t, b.Bind(NewMask(0)), ErrUnsupported)
	assert.True(t, called)
}
