package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/rotext/stack"
)

func TestUnbounded(t *testing.T) {
	var s stack.Stack[int]
	for i := 0; i < 100; i++ {
		require.NoError(t, s.TryPush(i))
	}
	assert.Equal(t, 100, s.Len())
	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, 99, top)
}

func TestCapacityEnforced(t *testing.T) {
	s := stack.New[string](2)
	require.NoError(t, s.TryPush("a"))
	require.NoError(t, s.TryPush("b"))
	err := s.TryPush("c")
	assert.ErrorIs(t, err, stack.ErrOutOfSpace)
	assert.Equal(t, 2, s.Len(), "rejected push must not have been silently applied")
}

func TestPopOrder(t *testing.T) {
	s := stack.New[int](4)
	require.NoError(t, s.TryPush(1))
	require.NoError(t, s.TryPush(2))
	require.NoError(t, s.TryPush(3))

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	require.NoError(t, s.TryPush(4))
	assert.Equal(t, []int{1, 4}, s.AsSlice())
}

func TestPopEmpty(t *testing.T) {
	var s stack.Stack[int]
	_, ok := s.Pop()
	assert.False(t, ok)
}
