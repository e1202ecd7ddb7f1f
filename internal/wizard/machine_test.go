package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func failOn(step int) ValidateFunc {
	return func(s int) map[string]string {
		if s == step {
			return map[string]string{"field": "Field is required"}
		}
		return nil
	}
}

func TestNext(t *testing.T) {
	t.Run("advances when the step validates", func(t *testing.T) {
		m := New(4, nil)
		errs, ok := m.Next()
		assert.True(t, ok)
		assert.Empty(t, errs)
		assert.Equal(t, 2, m.Current())
	})

	t.Run("never advances past a failing step", func(t *testing.T) {
		m := New(4, failOn(1))
		errs, ok := m.Next()
		assert.False(t, ok)
		assert.Equal(t, map[string]string{"field": "Field is required"}, errs)
		assert.Equal(t, 1, m.Current())

		// Re-validating unchanged data yields the identical error map
		again, _ := m.Next()
		assert.Equal(t, errs, again)
	})

	t.Run("clamps at the last step", func(t *testing.T) {
		m := Restore(4, 4, nil)
		_, ok := m.Next()
		assert.True(t, ok)
		assert.Equal(t, 4, m.Current())
	})
}

func TestPrevious(t *testing.T) {
	t.Run("always decrements regardless of validation", func(t *testing.T) {
		m := Restore(3, 4, failOn(3))
		m.Previous()
		assert.Equal(t, 2, m.Current())
	})

	t.Run("clamps at step 1", func(t *testing.T) {
		m := New(4, nil)
		m.Previous()
		assert.Equal(t, 1, m.Current())
	})
}

func TestGoto(t *testing.T) {
	t.Run("backward jumps are unconditional", func(t *testing.T) {
		m := Restore(4, 4, failOn(4))
		errs, err := m.Goto(1)
		assert.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, 1, m.Current())
	})

	t.Run("forward jump limited to the next step", func(t *testing.T) {
		m := New(4, nil)
		_, err := m.Goto(3)
		assert.ErrorIs(t, err, ErrForwardJump)
		assert.Equal(t, 1, m.Current())
	})

	t.Run("forward jump to next step is validation gated", func(t *testing.T) {
		m := New(4, failOn(1))
		errs, err := m.Goto(2)
		assert.NoError(t, err)
		assert.NotEmpty(t, errs)
		assert.Equal(t, 1, m.Current())
	})

	t.Run("out of range targets are rejected", func(t *testing.T) {
		m := New(4, nil)
		_, err := m.Goto(0)
		assert.ErrorIs(t, err, ErrStepOutOfRange)
		_, err = m.Goto(5)
		assert.ErrorIs(t, err, ErrStepOutOfRange)
	})
}

func TestRestoreClamps(t *testing.T) {
	assert.Equal(t, 1, Restore(0, 4, nil).Current())
	assert.Equal(t, 4, Restore(9, 4, nil).Current())
	assert.Equal(t, 1, Restore(1, 0, nil).Total())
}
