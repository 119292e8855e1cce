package repository

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/storage"
	"github.com/bfsmith/family-calendar/internal/validation"
)

type FamilyMemberRepository struct {
	members *storage.Collection[models.FamilyMember]
	chores  *ChoreRepository
	opts    options
}

func NewFamilyMemberRepository(p storage.Provider, opts ...Option) *FamilyMemberRepository {
	return &FamilyMemberRepository{
		members: storage.NewCollection[models.FamilyMember](p, constants.CollectionMembers),
		chores:  NewChoreRepository(p, opts...),
		opts:    buildOptions(opts),
	}
}

func (r *FamilyMemberRepository) Create(in models.CreateMemberInput) (models.FamilyMember, error) {
	m := models.FamilyMember{
		ID:        r.opts.newID(),
		Name:      strings.TrimSpace(in.Name),
		Color:     in.Color,
		CreatedAt: r.opts.now(),
	}
	if err := validation.ValidateMember(m); err != nil {
		return models.FamilyMember{}, err
	}

	taken, err := r.NameExists(m.Name, "")
	if err != nil {
		return models.FamilyMember{}, err
	}
	if taken {
		return models.FamilyMember{}, fmt.Errorf("family member %q: %w", m.Name, ErrNameTaken)
	}

	if err := r.members.Put(m.ID, m); err != nil {
		return models.FamilyMember{}, fmt.Errorf("failed to create family member: %w", err)
	}
	logger.Debug("Created family member", "id", m.ID, "name", m.Name)
	return m, nil
}

func (r *FamilyMemberRepository) Get(id string) (models.FamilyMember, error) {
	return r.members.Get(id)
}

// GetAll returns every member ordered by name.
func (r *FamilyMemberRepository) GetAll() ([]models.FamilyMember, error) {
	all, err := r.members.GetAll()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b models.FamilyMember) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return all, nil
}

func (r *FamilyMemberRepository) Update(in models.UpdateMemberInput) (models.FamilyMember, error) {
	m, err := r.members.Get(in.ID)
	if err != nil {
		return models.FamilyMember{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if !sameName(name, m.Name) {
			taken, err := r.NameExists(name, m.ID)
			if err != nil {
				return models.FamilyMember{}, err
			}
			if taken {
				return models.FamilyMember{}, fmt.Errorf("family member %q: %w", name, ErrNameTaken)
			}
		}
		m.Name = name
	}
	if in.Color != nil {
		m.Color = *in.Color
	}
	if err := validation.ValidateMember(m); err != nil {
		return models.FamilyMember{}, err
	}

	if err := r.members.Put(m.ID, m); err != nil {
		return models.FamilyMember{}, fmt.Errorf("failed to update family member: %w", err)
	}
	logger.Debug("Updated family member", "id", m.ID)
	return m, nil
}

// Delete removes the member together with their chores and those chores'
// completions.
func (r *FamilyMemberRepository) Delete(id string) error {
	if _, err := r.members.Get(id); err != nil {
		return err
	}

	removed, err := r.chores.DeleteByMember(id)
	if err != nil {
		return fmt.Errorf("failed to delete chores of family member %s: %w", id, err)
	}
	if err := r.members.Delete(id); err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	logger.Debug("Deleted family member", "id", id, "chores", removed)
	return nil
}

// NameExists reports whether another member (not excludeID) uses name,
// ignoring case and surrounding space.
func (r *FamilyMemberRepository) NameExists(name, excludeID string) (bool, error) {
	all, err := r.members.GetAll()
	if err != nil {
		return false, err
	}
	for _, m := range all {
		if m.ID != excludeID && sameName(m.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
