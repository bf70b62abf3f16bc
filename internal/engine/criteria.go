package engine

import "github.com/applaudhq/applaud/internal/domain"

// criterionSet holds the five rule statuses for one draft. It is plain data;
// the owning session serializes all mutation.
type criterionSet struct {
	items [5]domain.GuideItem
}

func newCriterionSet() *criterionSet {
	var c criterionSet
	for i, label := range domain.Criteria() {
		c.items[i] = domain.GuideItem{Label: label, Status: domain.StatusNeutral}
	}
	return &c
}

func (c *criterionSet) set(label domain.Criterion, status domain.RuleStatus) {
	for i := range c.items {
		if c.items[i].Label == label {
			c.items[i].Status = status
			return
		}
	}
}

func (c *criterionSet) get(label domain.Criterion) domain.RuleStatus {
	for i := range c.items {
		if c.items[i].Label == label {
			return c.items[i].Status
		}
	}
	return domain.StatusNeutral
}

// applyAbuseVerdict records the abuse check outcome. An abusive verdict
// short-circuits the cycle: the quality statuses from any earlier cycle are
// no longer meaningful and drop back to neutral.
func (c *criterionSet) applyAbuseVerdict(abusive bool) {
	if abusive {
		c.set(domain.AbusiveCheck, domain.StatusError)
		for _, q := range domain.QualityCriteria() {
			c.set(q, domain.StatusNeutral)
		}
		return
	}
	c.set(domain.AbusiveCheck, domain.StatusSuccess)
}

func (c *criterionSet) reset() {
	for i := range c.items {
		c.items[i].Status = domain.StatusNeutral
	}
}

func (c *criterionSet) countPassed(includeAbuse bool) int {
	n := 0
	for _, it := range c.items {
		if !includeAbuse && it.Label == domain.AbusiveCheck {
			continue
		}
		if it.Status == domain.StatusSuccess {
			n++
		}
	}
	return n
}

func (c *criterionSet) allPassed() bool {
	return c.countPassed(true) == len(c.items)
}

// failingQuality returns the quality rules not currently passing, in reveal
// order. AbusiveCheck is never part of a rewrite or completion request.
func (c *criterionSet) failingQuality() []domain.Criterion {
	var failing []domain.Criterion
	for _, q := range domain.QualityCriteria() {
		if c.get(q) != domain.StatusSuccess {
			failing = append(failing, q)
		}
	}
	return failing
}

func (c *criterionSet) weightedScore() int {
	total := 0
	for _, it := range c.items {
		if it.Status == domain.StatusSuccess {
			total += it.Label.Weight()
		}
	}
	return total
}

func (c *criterionSet) snapshot() [5]domain.GuideItem {
	return c.items
}

// statusUpdate is one step of the staggered reveal.
type statusUpdate struct {
	label domain.Criterion
	pass  bool
}

// qualityUpdates flattens a report's pass map into the fixed reveal sequence.
func qualityUpdates(pass map[domain.Criterion]bool) []statusUpdate {
	updates := make([]statusUpdate, 0, 4)
	for _, q := range domain.QualityCriteria() {
		updates = append(updates, statusUpdate{label: q, pass: pass[q]})
	}
	return updates
}
