package events

import "github.com/SergeyKozhin/calendar-reminder-backend/internal/model"

// Transition is the result of a done/undone state change.
// Spawned holds aggregates created by the change that still have to be stored.
type Transition struct {
	Event   *model.Event
	Changed bool
	Spawned []*model.Event
}

// MarkDone completes a pending event. Completing a recurring event spawns at most one successor.
// An event that is already done is left as is and spawns nothing.
func MarkDone(event *model.Event, spawner *Spawner) Transition {
	if event.Done {
		return Transition{Event: event}
	}

	event.Done = true
	t := Transition{Event: event, Changed: true}

	if event.Recurring() {
		if next := spawner.SpawnNext(event); next != nil {
			t.Spawned = append(t.Spawned, next)
		}
	}

	return t
}

// MarkUndone reopens a completed event.
// Successors spawned when it was completed stay untouched.
func MarkUndone(event *model.Event) Transition {
	if !event.Done {
		return Transition{Event: event}
	}

	event.Done = false
	return Transition{Event: event, Changed: true}
}
