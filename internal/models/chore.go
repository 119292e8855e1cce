package models

import "time"

// Chore is a point-in-time task assigned to a family member. CreatedAt is the
// anchor its recurrence is aligned to.
type Chore struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	FamilyMemberID string      `json:"familyMemberId"`
	Icon           string      `json:"icon,omitempty"`
	Points         int         `json:"points"`
	Recurring      *Recurrence `json:"recurring,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ChoreCompletion records that one occurrence of a chore was done.
// FamilyMemberID is whoever completed it, which may differ from the assignee.
type ChoreCompletion struct {
	ID             string    `json:"id"`
	ChoreID        string    `json:"choreId"`
	FamilyMemberID string    `json:"familyMemberId"`
	CompletedAt    time.Time `json:"completedAt"`
	OccurrenceDate time.Time `json:"occurrenceDate"`
}

type CreateChoreInput struct {
	Title          string
	FamilyMemberID string
	Icon           string
	Points         int
	Recurring      *Recurrence
}

type UpdateChoreInput struct {
	ID             string
	Title          *string
	FamilyMemberID *string
	Icon           *string
	Points         *int
	Recurring      *Recurrence
	ClearRecurring bool
}

type ChoreQuery struct {
	Start                  *time.Time
	End                    *time.Time
	Title                  string
	FamilyMemberID         string
	RecurringOnly          bool
	IncludeAllNonRecurring bool
	Limit                  int
	Offset                 int
}

// ChoreIcons maps a chore category to its icon name.
var ChoreIcons = map[string]string{
	"cleaning": "fa-broom",
	"dishes":   "fa-utensils",
	"laundry":  "fa-tshirt",
	"trash":    "fa-trash",
	"vacuum":   "fa-vacuum",
	"bathroom": "fa-toilet",
	"kitchen":  "fa-kitchen-set",
	"bedroom":  "fa-bed",
	"garden":   "fa-seedling",
	"car":      "fa-car",
	"shopping": "fa-shopping-cart",
	"cooking":  "fa-chef-hat",
	"pets":     "fa-dog",
	"homework": "fa-book",
	"sports":   "fa-basketball",
	"music":    "fa-music",
}
