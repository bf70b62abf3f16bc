package engine

// Score bands drive presentation only.
const (
	BandLow    = "low"
	BandMedium = "medium"
	BandHigh   = "high"
)

func scoreBand(score int) string {
	if score < 40 {
		return BandLow
	}
	if score < 70 {
		return BandMedium
	}
	return BandHigh
}

// scoreAnimator walks the displayed score toward its target by one point per
// tick. Retargeting mid-flight just changes direction; the displayed value is
// never reset. Ticks are scheduled by the owning session so they stay inside
// its lock discipline.
type scoreAnimator struct {
	displayed int
	target    int
	ticking   bool
}

// retarget sets a new target and reports whether a tick chain needs starting.
func (a *scoreAnimator) retarget(target int) bool {
	a.target = target
	if a.ticking || a.displayed == a.target {
		return false
	}
	a.ticking = true
	return true
}

// tick moves one point and reports whether another tick is needed.
func (a *scoreAnimator) tick() bool {
	switch {
	case a.displayed < a.target:
		a.displayed++
	case a.displayed > a.target:
		a.displayed--
	}
	a.ticking = a.displayed != a.target
	return a.ticking
}

// reset snaps the score straight back to zero without animating.
func (a *scoreAnimator) reset() {
	a.displayed = 0
	a.target = 0
	a.ticking = false
}

func (a *scoreAnimator) fraction() float64 {
	return float64(a.displayed) / 100
}
