package repository_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/repository"
	"github.com/bfsmith/family-calendar/internal/validation"
)

func TestMemberCreate(t *testing.T) {
	f := newFixture(t)

	m, err := f.Members.Create(models.CreateMemberInput{Name: "  Alice ", Color: "accent"})
	require.NoError(t, err)
	assert.Equal(t, "id01", m.ID)
	assert.Equal(t, "Alice", m.Name)
	assert.True(t, m.CreatedAt.Equal(monday))

	got, err := f.Members.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestMemberNamesAreUnique(t *testing.T) {
	f := newFixture(t)
	f.member(t, "Alice")
	bob := f.member(t, "Bob")

	_, err := f.Members.Create(models.CreateMemberInput{Name: "alice", Color: "primary"})
	assert.ErrorIs(t, err, repository.ErrNameTaken)

	_, err = f.Members.Update(models.UpdateMemberInput{ID: bob.ID, Name: ptr("ALICE")})
	assert.ErrorIs(t, err, repository.ErrNameTaken)

	renamed, err := f.Members.Update(models.UpdateMemberInput{ID: bob.ID, Name: ptr("bob")})
	require.NoError(t, err)
	assert.Equal(t, "bob", renamed.Name)
}

func TestMemberValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.Members.Create(models.CreateMemberInput{Name: " ", Color: "mauve"})
	require.Error(t, err)

	var fe *validation.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "color")
}

func TestMemberGetAllSortedByName(t *testing.T) {
	f := newFixture(t)
	f.member(t, "carol")
	f.member(t, "Alice")
	f.member(t, "bob")

	all, err := f.Members.GetAll()
	require.NoError(t, err)
	names := []string{}
	for _, m := range all {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Alice", "bob", "carol"}, names)
}

func TestMemberDeleteCascadesToChores(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "Alice")
	bob := f.member(t, "Bob")
	cal := f.calendar(t, "Family")

	dishes, err := f.Chores.Create(models.CreateChoreInput{Title: "Dishes", FamilyMemberID: alice.ID, Points: 5})
	require.NoError(t, err)
	trash, err := f.Chores.Create(models.CreateChoreInput{Title: "Trash", FamilyMemberID: bob.ID, Points: 5})
	require.NoError(t, err)
	_, err = f.Chores.MarkComplete(dishes.ID, "", day(6, 0, 0))
	require.NoError(t, err)
	_, err = f.Chores.MarkComplete(trash.ID, alice.ID, day(6, 0, 0))
	require.NoError(t, err)
	ev, err := f.Events.Create(models.CreateEventInput{Title: "Dinner", StartTime: day(6, 18, 0), EndTime: day(6, 19, 0), CalendarID: cal.ID})
	require.NoError(t, err)

	require.NoError(t, f.Members.Delete(alice.ID))

	_, err = f.Members.Get(alice.ID)
	assert.True(t, repository.IsNotFound(err))
	_, err = f.Chores.Get(dishes.ID)
	assert.True(t, repository.IsNotFound(err))

	// Bob's chore and its completion stay even though Alice did it.
	_, err = f.Chores.Get(trash.ID)
	assert.NoError(t, err)
	comps, err := f.Chores.CompletionRecords()
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, trash.ID, comps[0].ChoreID)

	// Events are not owned by members.
	_, err = f.Events.Get(ev.ID)
	assert.NoError(t, err)
}

func TestMemberDeleteMissing(t *testing.T) {
	f := newFixture(t)
	assert.True(t, repository.IsNotFound(f.Members.Delete("nobody")))
}
