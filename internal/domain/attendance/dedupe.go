package attendance

// precedence ranks statuses when several records exist for the same date.
// Explicit employee actions win over the absence default; a decided leave wins over a pending one.
func (s Status) precedence() int {
	switch s {
	case StatusLeave:
		return 4
	case StatusLeavePending:
		return 3
	case StatusPresent:
		return 2
	case StatusAbsent:
		return 1
	}
	return 0
}

// Deduplicate collapses records to one per calendar date, keyed by DateKey.
// The higher precedence status wins; on a tie the record seen first is kept.
func Deduplicate(records []Record) map[string]Record {
	byDate := make(map[string]Record, len(records))
	for _, r := range records {
		key := DateKey(r.Date)
		current, ok := byDate[key]
		if !ok || r.Status.precedence() > current.Status.precedence() {
			byDate[key] = r
		}
	}
	return byDate
}
