// Package wizard implements the step state machine shared by the cost
// estimator and the contact inquiry flows: an integer step in [1, N]
// whose forward transitions are gated by per-step validation.
package wizard

import "errors"

var (
	// ErrStepOutOfRange is returned for targets outside [1, total]
	ErrStepOutOfRange = errors.New("wizard: step out of range")
	// ErrForwardJump is returned when a jump would skip ahead more than
	// one step past the current one
	ErrForwardJump = errors.New("wizard: cannot jump ahead of the next step")
)

// ValidateFunc validates a single step, returning a field->message map.
// An empty (or nil) map means the step passes. Must be deterministic and
// side-effect free.
type ValidateFunc func(step int) map[string]string

// Machine is the step cursor for one wizard run. It holds no form data;
// callers persist the current step and restore the machine per request.
type Machine struct {
	current  int
	total    int
	validate ValidateFunc
}

// Restore rebuilds a machine at the given step. Steps are clamped into
// [1, total] so a corrupted stored value cannot wedge the wizard.
func Restore(current, total int, validate ValidateFunc) *Machine {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	return &Machine{current: current, total: total, validate: validate}
}

// New returns a machine at step 1
func New(total int, validate ValidateFunc) *Machine {
	return Restore(1, total, validate)
}

// Current returns the current step index
func (m *Machine) Current() int { return m.current }

// Total returns the number of steps
func (m *Machine) Total() int { return m.total }

// Next validates the current step and advances on success, clamped to
// the last step. On failure the machine stays put and the error map is
// returned for display.
func (m *Machine) Next() (map[string]string, bool) {
	errs := m.runValidate(m.current)
	if len(errs) > 0 {
		return errs, false
	}
	if m.current < m.total {
		m.current++
	}
	return nil, true
}

// Previous moves back one step, clamped to step 1. Never blocked by
// validation.
func (m *Machine) Previous() {
	if m.current > 1 {
		m.current--
	}
}

// Goto jumps to an arbitrary step. Backward jumps and re-selecting the
// current step are always allowed; the only permitted forward jump is to
// current+1 and it is validation-gated exactly like Next.
func (m *Machine) Goto(target int) (map[string]string, error) {
	if target < 1 || target > m.total {
		return nil, ErrStepOutOfRange
	}
	if target > m.current+1 {
		return nil, ErrForwardJump
	}
	if target == m.current+1 {
		if errs := m.runValidate(m.current); len(errs) > 0 {
			return errs, nil
		}
	}
	m.current = target
	return nil, nil
}

func (m *Machine) runValidate(step int) map[string]string {
	if m.validate == nil {
		return nil
	}
	return m.validate(step)
}
