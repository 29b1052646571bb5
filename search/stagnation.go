package search

// Phase is the action the stagnation manager asks for.
type Phase int

const (
	// PhaseIntensify: revert to the best-found solution, clear tabu memory.
	PhaseIntensify Phase = iota
	// PhaseDiversify: rebuild from a rarely used element, clear tabu memory.
	PhaseDiversify
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseDiversify {
		return "diversify"
	}

	return "intensify"
}

// Stagnation is the self-tuning intensification/diversification controller.
//
// It counts consecutive non-improving iterations. Once the count exceeds the
// tolerance D (starting at 1) an intervention is due; its phase alternates
// with the parity of D, and every intervention grows D by one, so the search
// becomes progressively more patient.
type Stagnation struct {
	d     int
	count int
}

// NewStagnation returns a manager with D=1 and count=0.
func NewStagnation() *Stagnation {
	return &Stagnation{d: 1}
}

// D returns the current non-improvement tolerance.
func (s *Stagnation) D() int { return s.d }

// Count returns the consecutive non-improving iterations since the last reset.
func (s *Stagnation) Count() int { return s.count }

// Observe feeds the outcome of one iteration: any improvement resets the
// counter, otherwise it grows by one.
func (s *Stagnation) Observe(p Progress) {
	if p == NoProgress {
		s.count++
		return
	}
	s.count = 0
}

// Due reports whether count > D.
func (s *Stagnation) Due() bool { return s.count > s.d }

// Phase returns PhaseIntensify for even D and PhaseDiversify for odd D.
func (s *Stagnation) Phase() Phase {
	if s.d%2 == 0 {
		return PhaseIntensify
	}

	return PhaseDiversify
}

// Advance closes an intervention: D grows by one and the counter resets.
func (s *Stagnation) Advance() {
	s.d++
	s.count = 0
}

// Force sets the counter, letting callers and tests trigger an intervention
// on the next Due check.
func (s *Stagnation) Force(count int) { s.count = count }
