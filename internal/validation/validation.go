package validation

import (
	"fmt"
	"strings"

	"github.com/bfsmith/family-calendar/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOrphanEvent         ConflictType = "orphan_event"
	ConflictOrphanChore         ConflictType = "orphan_chore"
	ConflictOrphanCompletion    ConflictType = "orphan_completion"
	ConflictDuplicateMemberName ConflictType = "duplicate_member_name"
	ConflictDuplicateCalendar   ConflictType = "duplicate_calendar_name"
	ConflictInvalidRecurrence   ConflictType = "invalid_recurrence"
)

// Conflict represents an inconsistency found in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names involved
	IDs         []string // ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Snapshot is everything the validator looks at.
type Snapshot struct {
	Members     []models.FamilyMember
	Calendars   []models.Calendar
	Events      []models.Event
	Chores      []models.Chore
	Completions []models.ChoreCompletion
}

// Validator checks stored records for references and rules that no longer hold
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(s Snapshot) ValidationResult {
	var result ValidationResult

	members := make(map[string]bool, len(s.Members))
	memberNames := map[string][]models.FamilyMember{}
	for _, m := range s.Members {
		members[m.ID] = true
		key := strings.ToLower(strings.TrimSpace(m.Name))
		memberNames[key] = append(memberNames[key], m)
	}
	for _, m := range s.Members {
		dups := memberNames[strings.ToLower(strings.TrimSpace(m.Name))]
		if len(dups) > 1 && dups[0].ID == m.ID {
			ids := make([]string, len(dups))
			for i, d := range dups {
				ids[i] = d.ID
			}
			result.add(Conflict{
				Type:        ConflictDuplicateMemberName,
				Description: fmt.Sprintf("%d family members are named %q", len(dups), m.Name),
				Items:       []string{m.Name},
				IDs:         ids,
			})
		}
	}

	calendars := make(map[string]bool, len(s.Calendars))
	calendarNames := map[string]string{}
	for _, c := range s.Calendars {
		calendars[c.ID] = true
		key := strings.ToLower(c.Name)
		if first, ok := calendarNames[key]; ok {
			result.add(Conflict{
				Type:        ConflictDuplicateCalendar,
				Description: fmt.Sprintf("calendar name %q is used more than once", c.Name),
				Items:       []string{c.Name},
				IDs:         []string{first, c.ID},
			})
			continue
		}
		calendarNames[key] = c.ID
	}

	for _, e := range s.Events {
		if !calendars[e.CalendarID] {
			result.add(Conflict{
				Type:        ConflictOrphanEvent,
				Description: fmt.Sprintf("event %q refers to missing calendar %s", e.Title, e.CalendarID),
				Items:       []string{e.Title},
				IDs:         []string{e.ID},
			})
		}
		if err := ValidateRecurrence(e.Recurring); err != nil {
			result.add(invalidRule("event", e.Title, e.ID, err))
		}
	}

	chores := make(map[string]bool, len(s.Chores))
	for _, c := range s.Chores {
		chores[c.ID] = true
		if !members[c.FamilyMemberID] {
			result.add(Conflict{
				Type:        ConflictOrphanChore,
				Description: fmt.Sprintf("chore %q is assigned to missing family member %s", c.Title, c.FamilyMemberID),
				Items:       []string{c.Title},
				IDs:         []string{c.ID},
			})
		}
		if err := ValidateRecurrence(c.Recurring); err != nil {
			result.add(invalidRule("chore", c.Title, c.ID, err))
		}
	}

	for _, c := range s.Completions {
		if !chores[c.ChoreID] {
			result.add(Conflict{
				Type:        ConflictOrphanCompletion,
				Description: fmt.Sprintf("completion %s refers to missing chore %s", c.ID, c.ChoreID),
				IDs:         []string{c.ID},
			})
		}
	}

	return result
}

func invalidRule(kind, title, id string, err error) Conflict {
	return Conflict{
		Type:        ConflictInvalidRecurrence,
		Description: fmt.Sprintf("%s %q has an invalid recurrence: %s", kind, title, strings.ReplaceAll(err.Error(), "\n", "; ")),
		Items:       []string{title},
		IDs:         []string{id},
	}
}
