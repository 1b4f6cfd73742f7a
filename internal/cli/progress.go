package cli

import (
	"fmt"
	"time"
)

// ProgressState counts finished evaluations out of a known total and
// estimates the time remaining from the average pace so far.
type ProgressState struct {
	total     int
	completed int
	startTime time.Time
	now       func() time.Time
}

// NewProgressState starts tracking total evaluations.
func NewProgressState(total int) *ProgressState {
	return &ProgressState{total: total, startTime: time.Now(), now: time.Now}
}

// Complete records one finished evaluation. Extra calls beyond the total are
// ignored.
func (ps *ProgressState) Complete() {
	if ps.completed < ps.total {
		ps.completed++
	}
}

// Completed returns the number of finished evaluations.
func (ps *ProgressState) Completed() int { return ps.completed }

// Fraction returns the finished share in [0, 1].
func (ps *ProgressState) Fraction() float64 {
	if ps.total == 0 {
		return 0
	}
	return float64(ps.completed) / float64(ps.total)
}

// ETA extrapolates the remaining time, or returns 0 before the first
// evaluation finishes.
func (ps *ProgressState) ETA() time.Duration {
	if ps.completed == 0 || ps.completed >= ps.total {
		return 0
	}
	elapsed := ps.now().Sub(ps.startTime)
	per := elapsed / time.Duration(ps.completed)
	eta := per * time.Duration(ps.total-ps.completed)
	if eta > 24*time.Hour {
		eta = 24 * time.Hour
	}
	return eta
}

func (ps *ProgressState) String() string {
	return fmt.Sprintf("%d/%d %6.2f%% [%s] ETA: %s",
		ps.completed, ps.total, ps.Fraction()*100, progressBar(ps.Fraction(), ProgressBarWidth), FormatETA(ps.ETA()))
}

// FormatETA formats a duration into a short human-readable estimate.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	if eta < time.Minute {
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	}
	if eta < time.Hour {
		minutes := int(eta.Minutes())
		if seconds := int(eta.Seconds()) % 60; seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := int(eta.Hours())
	if minutes := int(eta.Minutes()) % 60; minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
