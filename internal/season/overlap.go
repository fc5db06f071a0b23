package season

import "time"

// Overlaps is the closed-interval intersection test: s1 ≤ e2 and e1 ≥ s2.
func Overlaps(a, b Range) bool {
	return !Day(a.Start).After(Day(b.End)) && !Day(a.End).Before(Day(b.Start))
}

// FindOverlap returns the first active rule, other than excludeID, whose
// range intersects candidate.
func FindOverlap(rules []Rule, candidate Range, excludeID string) (Rule, bool) {
	for _, r := range rules {
		if !r.IsActive || (excludeID != "" && r.ID == excludeID) {
			continue
		}
		if Overlaps(r.Range(), candidate) {
			return r, true
		}
	}
	return Rule{}, false
}

// CheckOverlap reports whether candidate collides with any active rule
// other than excludeID.
func CheckOverlap(rules []Rule, candidate Range, excludeID string) bool {
	_, found := FindOverlap(rules, candidate, excludeID)
	return found
}

// ResolveActiveRule picks the rule that prices a move on date. Among active
// rules containing the date the highest Priority wins, then the most
// recently created, then the greatest ID.
func ResolveActiveRule(rules []Rule, date time.Time) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	for _, r := range rules {
		if !r.IsActive || !r.Range().Contains(date) {
			continue
		}
		if !found || outranks(r, best) {
			best = r
			found = true
		}
	}
	return best, found
}

func outranks(a, b Rule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
