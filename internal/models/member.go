package models

import "time"

type FamilyMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateMemberInput struct {
	Name  string
	Color string
}

// UpdateMemberInput patches a member; nil fields are left unchanged.
type UpdateMemberInput struct {
	ID    string
	Name  *string
	Color *string
}
