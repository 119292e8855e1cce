package repository

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/storage"
	"github.com/bfsmith/family-calendar/internal/validation"
)

// ChoreOccurrence is a chore as it appears in a query result. Generated
// occurrences carry a derived key and their occurrence instant in Date; the
// stored chore itself is returned under its canonical key with Date set to
// its creation time.
type ChoreOccurrence struct {
	Key   recurrence.Key
	Chore models.Chore
	Date  time.Time
}

func (o ChoreOccurrence) IsGenerated() bool {
	return o.Key.Derived
}

type ChoreRepository struct {
	chores      *storage.Collection[models.Chore]
	completions *storage.Collection[models.ChoreCompletion]
	members     *storage.Collection[models.FamilyMember]
	opts        options
}

func NewChoreRepository(p storage.Provider, opts ...Option) *ChoreRepository {
	return &ChoreRepository{
		chores:      storage.NewCollection[models.Chore](p, constants.CollectionChores),
		completions: storage.NewCollection[models.ChoreCompletion](p, constants.CollectionChoreCompletions),
		members:     storage.NewCollection[models.FamilyMember](p, constants.CollectionMembers),
		opts:        buildOptions(opts),
	}
}

func (r *ChoreRepository) check(c models.Chore) error {
	if err := validation.ValidateChore(c); err != nil {
		return err
	}
	if _, err := r.members.Get(c.FamilyMemberID); err != nil {
		return fmt.Errorf("family member %s: %w", c.FamilyMemberID, err)
	}
	return nil
}

func (r *ChoreRepository) Create(in models.CreateChoreInput) (models.Chore, error) {
	now := r.opts.now()
	c := models.Chore{
		ID:             r.opts.newID(),
		Title:          strings.TrimSpace(in.Title),
		FamilyMemberID: in.FamilyMemberID,
		Icon:           in.Icon,
		Points:         in.Points,
		Recurring:      validation.NormalizeRecurrence(in.Recurring),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.check(c); err != nil {
		return models.Chore{}, err
	}

	if err := r.chores.Put(c.ID, c); err != nil {
		return models.Chore{}, fmt.Errorf("failed to create chore: %w", err)
	}
	logger.Debug("Created chore", "id", c.ID, "title", c.Title, "member", c.FamilyMemberID)
	return c, nil
}

func (r *ChoreRepository) Get(id string) (models.Chore, error) {
	return r.chores.Get(id)
}

// GetAll returns every chore, oldest first.
func (r *ChoreRepository) GetAll() ([]models.Chore, error) {
	all, err := r.chores.GetAll()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b models.Chore) int {
		return compareTimes(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return all, nil
}

// Update applies the non-nil fields of in and bumps UpdatedAt. CreatedAt, the
// recurrence anchor, is never changed.
func (r *ChoreRepository) Update(in models.UpdateChoreInput) (models.Chore, error) {
	c, err := r.chores.Get(in.ID)
	if err != nil {
		return models.Chore{}, err
	}

	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.FamilyMemberID != nil {
		c.FamilyMemberID = *in.FamilyMemberID
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Points != nil {
		c.Points = *in.Points
	}
	if in.Recurring != nil {
		c.Recurring = validation.NormalizeRecurrence(in.Recurring)
	}
	if in.ClearRecurring {
		c.Recurring = nil
	}
	c.UpdatedAt = r.opts.now()

	if err := r.check(c); err != nil {
		return models.Chore{}, err
	}
	if err := r.chores.Put(c.ID, c); err != nil {
		return models.Chore{}, fmt.Errorf("failed to update chore: %w", err)
	}
	logger.Debug("Updated chore", "id", c.ID)
	return c, nil
}

// Delete removes the chore and all of its completions.
func (r *ChoreRepository) Delete(id string) error {
	if _, err := r.chores.Get(id); err != nil {
		return err
	}
	if _, err := r.deleteCompletions(func(c models.ChoreCompletion) bool { return c.ChoreID == id }); err != nil {
		return err
	}
	if err := r.chores.Delete(id); err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}
	logger.Debug("Deleted chore", "id", id)
	return nil
}

// DeleteByMember removes every chore assigned to memberID, with their
// completions, and returns how many chores were removed.
func (r *ChoreRepository) DeleteByMember(memberID string) (int, error) {
	all, err := r.chores.GetAll()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, c := range all {
		if c.FamilyMemberID != memberID {
			continue
		}
		if err := r.Delete(c.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Query returns chore occurrences matching q, sorted by Date:
//   - a recurring chore with a window yields its generated occurrences;
//   - a recurring chore without a window yields the chore itself;
//   - a non-recurring chore is included when IncludeAllNonRecurring is set,
//     when it has never been completed, or when one of its completions falls
//     on a day in [start day, end day).
func (r *ChoreRepository) Query(q models.ChoreQuery) ([]ChoreOccurrence, error) {
	all, err := r.chores.GetAll()
	if err != nil {
		return nil, err
	}

	var byChore map[string][]models.ChoreCompletion
	if !q.IncludeAllNonRecurring {
		byChore, err = r.completionsByChore()
		if err != nil {
			return nil, err
		}
	}

	windowed := q.Start != nil && q.End != nil
	title := strings.ToLower(q.Title)

	out := []ChoreOccurrence{}
	for _, c := range all {
		if title != "" && !strings.Contains(strings.ToLower(c.Title), title) {
			continue
		}
		if q.FamilyMemberID != "" && c.FamilyMemberID != q.FamilyMemberID {
			continue
		}
		if q.RecurringOnly && c.Recurring == nil {
			continue
		}

		switch {
		case c.Recurring != nil && windowed:
			for _, occ := range recurrence.Expand(recurrence.ChoreRecord(c), *q.Start, *q.End) {
				out = append(out, ChoreOccurrence{Key: occ.Key, Chore: c, Date: occ.Start})
			}
		case c.Recurring != nil:
			out = append(out, canonicalChore(c))
		case q.IncludeAllNonRecurring:
			out = append(out, canonicalChore(c))
		default:
			comps := byChore[c.ID]
			if len(comps) == 0 || (windowed && completedWithin(comps, *q.Start, *q.End)) {
				out = append(out, canonicalChore(c))
			}
		}
	}

	slices.SortStableFunc(out, func(a, b ChoreOccurrence) int {
		return compareTimes(a.Date, b.Date, a.Key.String(), b.Key.String())
	})
	return paginate(out, q.Offset, q.Limit), nil
}

func canonicalChore(c models.Chore) ChoreOccurrence {
	return ChoreOccurrence{Key: recurrence.CanonicalKey(c.ID), Chore: c, Date: c.CreatedAt}
}

// completedWithin compares calendar days only, in the location of start.
func completedWithin(comps []models.ChoreCompletion, start, end time.Time) bool {
	loc := start.Location()
	startDay := recurrence.StartOfDay(start)
	endDay := recurrence.StartOfDay(end.In(loc))
	for _, c := range comps {
		day := recurrence.StartOfDay(c.OccurrenceDate.In(loc))
		if !day.Before(startDay) && day.Before(endDay) {
			return true
		}
	}
	return false
}

func (r *ChoreRepository) completionsByChore() (map[string][]models.ChoreCompletion, error) {
	all, err := r.completions.GetAll()
	if err != nil {
		return nil, err
	}
	byChore := make(map[string][]models.ChoreCompletion)
	for _, c := range all {
		byChore[c.ChoreID] = append(byChore[c.ChoreID], c)
	}
	return byChore, nil
}

// MarkComplete records that memberID completed the occurrence of the chore at
// occurrence. An empty memberID credits the chore's assignee.
func (r *ChoreRepository) MarkComplete(choreID, memberID string, occurrence time.Time) (models.ChoreCompletion, error) {
	c, err := r.chores.Get(choreID)
	if err != nil {
		return models.ChoreCompletion{}, err
	}
	if memberID == "" {
		memberID = c.FamilyMemberID
	}

	comp := models.ChoreCompletion{
		ID:             r.opts.newID(),
		ChoreID:        choreID,
		FamilyMemberID: memberID,
		CompletedAt:    r.opts.now(),
		OccurrenceDate: occurrence,
	}
	if err := r.completions.Put(comp.ID, comp); err != nil {
		return models.ChoreCompletion{}, fmt.Errorf("failed to mark chore complete: %w", err)
	}
	logger.Debug("Completed chore", "chore", choreID, "member", memberID, "occurrence", occurrence)
	return comp, nil
}

// Completions lists the chore's completions whose occurrence falls in
// [from, to); nil bounds are open.
func (r *ChoreRepository) Completions(choreID string, from, to *time.Time) ([]models.ChoreCompletion, error) {
	all, err := r.completions.GetAll()
	if err != nil {
		return nil, err
	}

	out := []models.ChoreCompletion{}
	for _, c := range all {
		if c.ChoreID != choreID {
			continue
		}
		if from != nil && c.OccurrenceDate.Before(*from) {
			continue
		}
		if to != nil && !c.OccurrenceDate.Before(*to) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.ChoreCompletion) int {
		return compareTimes(a.OccurrenceDate, b.OccurrenceDate, a.ID, b.ID)
	})
	return out, nil
}

// AllCompletions lists completions of any chore with an occurrence in [from, to).
func (r *ChoreRepository) AllCompletions(from, to time.Time) ([]models.ChoreCompletion, error) {
	all, err := r.completions.GetAll()
	if err != nil {
		return nil, err
	}
	out := []models.ChoreCompletion{}
	for _, c := range all {
		if !c.OccurrenceDate.Before(from) && c.OccurrenceDate.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CompletionRecords returns every stored completion.
func (r *ChoreRepository) CompletionRecords() ([]models.ChoreCompletion, error) {
	return r.completions.GetAll()
}

// DeleteCompletion removes a single completion by id.
func (r *ChoreRepository) DeleteCompletion(id string) error {
	if _, err := r.completions.Get(id); err != nil {
		return err
	}
	return r.completions.Delete(id)
}

// IsCompleted reports whether the occurrence at exactly this instant has a
// completion, compared to the millisecond.
func (r *ChoreRepository) IsCompleted(choreID string, occurrence time.Time) (bool, error) {
	comps, err := r.Completions(choreID, nil, nil)
	if err != nil {
		return false, err
	}
	for _, c := range comps {
		if sameInstant(c.OccurrenceDate, occurrence) {
			return true, nil
		}
	}
	return false, nil
}

// RemoveCompletion deletes the chore's completions for exactly this
// occurrence instant and returns how many were removed.
func (r *ChoreRepository) RemoveCompletion(choreID string, occurrence time.Time) (int, error) {
	n, err := r.deleteCompletions(func(c models.ChoreCompletion) bool {
		return c.ChoreID == choreID && sameInstant(c.OccurrenceDate, occurrence)
	})
	if err != nil {
		return n, err
	}
	logger.Debug("Removed chore completion", "chore", choreID, "occurrence", occurrence, "removed", n)
	return n, nil
}

// ToggleCompletion flips the completion state of one occurrence and returns
// the new state. Derived keys name their occurrence instant; a canonical key
// (a non-recurring chore) is completed for the day containing fallbackDay.
func (r *ChoreRepository) ToggleCompletion(key recurrence.Key, memberID string, fallbackDay time.Time) (bool, error) {
	occurrence := recurrence.StartOfDay(fallbackDay)
	if key.Derived {
		occurrence = key.Time()
	}

	done, err := r.IsCompleted(key.BaseID, occurrence)
	if err != nil {
		return false, err
	}
	if done {
		_, err := r.RemoveCompletion(key.BaseID, occurrence)
		return false, err
	}
	if _, err := r.MarkComplete(key.BaseID, memberID, occurrence); err != nil {
		return false, err
	}
	return true, nil
}

func (r *ChoreRepository) deleteCompletions(match func(models.ChoreCompletion) bool) (int, error) {
	all, err := r.completions.GetAll()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, c := range all {
		if !match(c) {
			continue
		}
		if err := r.completions.Delete(c.ID); err != nil {
			return removed, fmt.Errorf("failed to delete completion %s: %w", c.ID, err)
		}
		removed++
	}
	return removed, nil
}

func sameInstant(a, b time.Time) bool {
	return a.UnixMilli() == b.UnixMilli()
}
