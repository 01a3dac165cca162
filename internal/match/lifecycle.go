package match

import (
	"fmt"
	"time"
)

var transitions = map[MatchStatus][]MatchStatus{
	StatusMatchUpcoming: {StatusMatchLive, StatusMatchCancelled},
	StatusMatchLive:     {StatusMatchCompleted, StatusMatchCancelled},
}

func canTransition(from, to MatchStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Lifecycle is the match status state machine. It only mutates the status
// fields of the Match it is given; persisting them, and the roster cascade on
// cancellation, belong to the caller. UPCOMING->LIVE happens lazily: every
// access evaluates the schedule against the clock, nothing runs on a timer.
type Lifecycle struct {
	now func() time.Time
}

func NewLifecycle(now func() time.Time) *Lifecycle {
	if now == nil {
		now = time.Now
	}
	return &Lifecycle{now: now}
}

func (l *Lifecycle) Now() time.Time {
	return l.now()
}

// Evaluate returns the status the match has right now without changing it.
func (l *Lifecycle) Evaluate(m *Match) MatchStatus {
	if m.Status == StatusMatchUpcoming && !l.now().Before(m.ScheduledAt) {
		return StatusMatchLive
	}
	return m.Status
}

// Refresh applies the time-driven UPCOMING->LIVE transition to m and reports
// whether it changed.
func (l *Lifecycle) Refresh(m *Match) bool {
	if l.Evaluate(m) == m.Status {
		return false
	}
	started := m.ScheduledAt
	m.Status = StatusMatchLive
	m.StartedAt = &started
	return true
}

func (l *Lifecycle) transition(m *Match, to MatchStatus) error {
	if !canTransition(m.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, to)
	}
	m.Status = to
	return nil
}

// Start moves an UPCOMING match to LIVE ahead of schedule. Starting a LIVE
// match is a no-op and reports false.
func (l *Lifecycle) Start(m *Match) (bool, error) {
	l.Refresh(m)
	if m.Status == StatusMatchLive {
		return false, nil
	}
	if err := l.transition(m, StatusMatchLive); err != nil {
		return false, err
	}
	now := l.now()
	m.StartedAt = &now
	return true, nil
}

// Complete moves a LIVE match to COMPLETED.
func (l *Lifecycle) Complete(m *Match) error {
	l.Refresh(m)
	if err := l.transition(m, StatusMatchCompleted); err != nil {
		return err
	}
	now := l.now()
	m.CompletedAt = &now
	return nil
}

// Cancel moves an UPCOMING or LIVE match to CANCELLED.
func (l *Lifecycle) Cancel(m *Match, reason string) error {
	l.Refresh(m)
	if err := l.transition(m, StatusMatchCancelled); err != nil {
		return err
	}
	now := l.now()
	m.CancelledAt = &now
	m.CancelReason = reason
	return nil
}

// CheckJoinable allows roster changes only while the match is UPCOMING.
func (l *Lifecycle) CheckJoinable(m *Match) error {
	if status := l.Evaluate(m); status != StatusMatchUpcoming {
		return fmt.Errorf("%w: match %d is %s", ErrMatchNotJoinable, m.ID, status)
	}
	return nil
}
