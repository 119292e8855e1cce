package recurrence

import "github.com/bfsmith/family-calendar/internal/models"

// EventRecord adapts a stored event to the engine.
func EventRecord(e models.Event) Record {
	return Record{
		ID:    e.ID,
		Start: e.StartTime,
		End:   e.EndTime,
		Rule:  e.Recurring,
	}
}

// ChoreRecord adapts a stored chore to the engine. Chores are anchored on
// their creation time and have no duration.
func ChoreRecord(c models.Chore) Record {
	return Record{
		ID:       c.ID,
		Start:    c.CreatedAt,
		End:      c.CreatedAt,
		Rule:     c.Recurring,
		DateOnly: true,
	}
}
