package members

import (
	"fmt"

	"github.com/bfsmith/family-calendar/internal/agenda"
	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
)

type MemberAddCmd struct {
	Name  string `arg:"" help:"Member name."`
	Color string `short:"c" help:"Theme name or hex colour." default:"primary"`
}

func (c *MemberAddCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Repos.Members.Create(models.CreateMemberInput{Name: c.Name, Color: c.Color})
	if err != nil {
		return fmt.Errorf("failed to add family member: %w", err)
	}
	ctx.Printf("Added family member: %s (ID: %s)\n", m.Name, m.ID)
	return nil
}

type MemberListCmd struct {
	ShowIDs bool `help:"Show member IDs." name:"show-ids"`
}

func (c *MemberListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Repos.Members.GetAll()
	if err != nil {
		return fmt.Errorf("failed to get family members: %w", err)
	}
	if len(all) == 0 {
		ctx.Println("No family members found")
		return nil
	}

	ctx.Println("Family members:")
	for _, m := range all {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", m.ID)
		}
		ctx.Printf("  %s%s - %s\n", agenda.Swatch(m.Name, m.Color), idStr, m.Color)
	}
	return nil
}

type MemberEditCmd struct {
	Member string  `arg:"" help:"Member name or ID."`
	Name   *string `help:"New name."`
	Color  *string `short:"c" help:"New colour."`
}

func (c *MemberEditCmd) Run(ctx *cli.Context) error {
	m, err := ctx.ResolveMember(c.Member)
	if err != nil {
		return err
	}
	if c.Name == nil && c.Color == nil {
		return fmt.Errorf("nothing to change; pass --name or --color")
	}

	updated, err := ctx.Repos.Members.Update(models.UpdateMemberInput{ID: m.ID, Name: c.Name, Color: c.Color})
	if err != nil {
		return fmt.Errorf("failed to update family member: %w", err)
	}
	ctx.Printf("Updated family member: %s\n", updated.Name)
	return nil
}

type MemberDeleteCmd struct {
	Member string `arg:"" help:"Member name or ID."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *MemberDeleteCmd) Run(ctx *cli.Context) error {
	m, err := ctx.ResolveMember(c.Member)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s and all of their chores?", m.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Repos.Members.Delete(m.ID); err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	ctx.Printf("Deleted family member: %s (ID: %s)\n", m.Name, m.ID)
	return nil
}
