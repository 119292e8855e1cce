package constants

// RecurrenceKind is the discriminant of a recurrence rule
type RecurrenceKind string

const (
	RecurrenceHourly RecurrenceKind = "hourly"
	RecurrenceDaily  RecurrenceKind = "daily"
	RecurrenceWeekly RecurrenceKind = "weekly"

	// OccurrenceKeySeparator joins a base id and an occurrence start in a flattened key
	OccurrenceKeySeparator = "_"

	HoursPerDay = 24
	DaysPerWeek = 7
)

// Default calendars created by 'famcal calendar defaults' and 'famcal init'.
var DefaultCalendars = []struct {
	Name  string
	Color string
}{
	{Name: "Personal", Color: "primary"},
	{Name: "Work", Color: "secondary"},
	{Name: "Family", Color: "accent"},
}
