// Package domain defines the core domain models for the interview service.
package domain

// SessionStatus represents the lifecycle status of an interview session.
type SessionStatus string

const (
	// StatusGenerated means the scenario exists but no conversation has started.
	StatusGenerated SessionStatus = "GENERATED"
	// StatusOngoing means the first participant message has been received.
	StatusOngoing SessionStatus = "ONGOING"
	// StatusCompleted is terminal; the completion sentinel was observed.
	StatusCompleted SessionStatus = "COMPLETED"
)

// statusRank orders statuses along the only legal path.
var statusRank = map[SessionStatus]int{
	StatusGenerated: 0,
	StatusOngoing:   1,
	StatusCompleted: 2,
}

// Valid reports whether s is a known status.
func (s SessionStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether a transition from s to next is allowed.
// Transitions are forward-only; COMPLETED never transitions out.
func (s SessionStatus) CanAdvance(next SessionStatus) bool {
	cur, ok := statusRank[s]
	if !ok {
		// Unknown stored status: allow the write so the record can be repaired.
		return next.Valid()
	}
	n, ok := statusRank[next]
	if !ok {
		return false
	}
	return n > cur
}

// Terminal reports whether no transition may leave s.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted
}
