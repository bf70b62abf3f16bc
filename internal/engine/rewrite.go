package engine

// Auto-rewrite policy. The floor is a tunable, not a behavioral promise.
const (
	autoRewriteFloor = 3
	minRewriteLen    = 50
)

// shouldAutoRewrite fires when the passed count (all five rules) reaches the
// floor and differs from the count that last triggered a rewrite. The marker
// resets to -1 whenever the count drops below the floor, so recovery
// re-triggers while a flat count does not.
func shouldAutoRewrite(totalPassed, lastTriggeredAt int) bool {
	return totalPassed >= autoRewriteFloor && totalPassed != lastTriggeredAt
}
