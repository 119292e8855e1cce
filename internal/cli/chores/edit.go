package chores

import (
	"fmt"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
)

type ChoreEditCmd struct {
	Chore    string  `arg:"" help:"Chore ID, occurrence key or title."`
	Title    *string `help:"New title."`
	Member   *string `short:"m" help:"Reassign to another member."`
	Icon     *string `short:"i" help:"New icon category; empty clears it."`
	Points   *int    `short:"p" help:"New points value."`
	NoRepeat bool    `help:"Remove the recurrence rule." name:"no-repeat"`

	cli.RecurrenceFlags `embed:""`
}

func (c *ChoreEditCmd) Run(ctx *cli.Context) error {
	ch, err := ctx.ResolveChore(c.Chore)
	if err != nil {
		return err
	}

	in := models.UpdateChoreInput{
		ID:             ch.ID,
		Title:          c.Title,
		Points:         c.Points,
		ClearRecurring: c.NoRepeat,
	}
	if c.Member != nil {
		m, err := ctx.ResolveMember(*c.Member)
		if err != nil {
			return err
		}
		in.FamilyMemberID = &m.ID
	}
	if c.Icon != nil {
		icon, err := iconFor(*c.Icon)
		if err != nil {
			return err
		}
		in.Icon = &icon
	}
	if c.Set() {
		rule, err := c.Rule()
		if err != nil {
			return err
		}
		if rule == nil {
			in.ClearRecurring = true
		}
		in.Recurring = rule
	}

	updated, err := ctx.Repos.Chores.Update(in)
	if err != nil {
		return fmt.Errorf("failed to update chore: %w", err)
	}
	ctx.Printf("Updated chore: %s\n", updated.Title)
	ctx.Printf("  %d pts, %s\n", updated.Points, cli.FormatRecurrence(updated.Recurring))
	return nil
}

type ChoreDeleteCmd struct {
	Chore string `arg:"" help:"Chore ID, occurrence key or title."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ChoreDeleteCmd) Run(ctx *cli.Context) error {
	ch, err := ctx.ResolveChore(c.Chore)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s and its completion history?", ch.Title))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Repos.Chores.Delete(ch.ID); err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}
	ctx.Printf("Deleted chore: %s (ID: %s)\n", ch.Title, ch.ID)
	return nil
}
