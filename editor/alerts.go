package editor

import (
	"iter"
	"time"
)

type (
	// Alerts is the list of messages waiting to be shown to the user. An
	// alert with a Name replaces an earlier alert with the same Name, so e.g.
	// repeated save errors do not pile up.
	Alerts struct {
		items []Alert
	}

	Alert struct {
		Name     string
		Message  string
		Priority AlertPriority
		Duration time.Duration
		Time     time.Time
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const defaultAlertDuration = 5 * time.Second

var priorityNames = [...]string{"info", "warning", "error"}

func (p AlertPriority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return "unknown"
	}
	return priorityNames[p]
}

// Add adds an unnamed alert shown for the default duration.
func (a *Alerts) Add(message string, priority AlertPriority) {
	a.AddAlert(Alert{Message: message, Priority: priority})
}

// AddNamed adds an alert, replacing any earlier alert with the same name.
func (a *Alerts) AddNamed(name, message string, priority AlertPriority) {
	a.AddAlert(Alert{Name: name, Message: message, Priority: priority})
}

func (a *Alerts) AddAlert(alert Alert) {
	if alert.Duration == 0 {
		alert.Duration = defaultAlertDuration
	}
	if alert.Time.IsZero() {
		alert.Time = time.Now()
	}
	if alert.Name != "" {
		for i := range a.items {
			if a.items[i].Name == alert.Name {
				a.items[i] = alert
				return
			}
		}
	}
	a.items = append(a.items, alert)
}

// Expire removes the alerts whose duration has passed by now.
func (a *Alerts) Expire(now time.Time) {
	kept := a.items[:0]
	for _, alert := range a.items {
		if now.Sub(alert.Time) < alert.Duration {
			kept = append(kept, alert)
		}
	}
	clear(a.items[len(kept):])
	a.items = kept
}

// Iterate yields the alerts, oldest first.
func (a *Alerts) Iterate(yield func(int, Alert) bool) {
	for i, alert := range a.items {
		if !yield(i, alert) {
			return
		}
	}
}

// All returns Iterate as an iterator, for use with range.
func (a *Alerts) All() iter.Seq2[int, Alert] { return a.Iterate }

func (a *Alerts) Len() int { return len(a.items) }

func (a *Alerts) Clear() { a.items = a.items[:0] }
