package constants

// Collection names in the persistent keyed store.
const (
	CollectionMembers          = "members"
	CollectionCalendars        = "calendars"
	CollectionEvents           = "events"
	CollectionChores           = "chores"
	CollectionChoreCompletions = "chore_completions"
)

// Collections lists every collection known to the application.
var Collections = []string{
	CollectionMembers,
	CollectionCalendars,
	CollectionEvents,
	CollectionChores,
	CollectionChoreCompletions,
}
