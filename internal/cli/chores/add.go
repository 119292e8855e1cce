package chores

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
)

type ChoreAddCmd struct {
	Title  string `arg:"" help:"Chore title."`
	Member string `short:"m" help:"Assigned family member (name or ID)." required:""`
	Icon   string `short:"i" help:"Icon category (cleaning, dishes, laundry, ...)."`
	Points int    `short:"p" help:"Points awarded per completion." default:"10"`

	cli.RecurrenceFlags `embed:""`
}

func (c *ChoreAddCmd) Validate() error {
	if c.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	_, err := iconFor(c.Icon)
	return err
}

func (c *ChoreAddCmd) Run(ctx *cli.Context) error {
	m, err := ctx.ResolveMember(c.Member)
	if err != nil {
		return err
	}
	rule, err := c.Rule()
	if err != nil {
		return err
	}
	icon, err := iconFor(c.Icon)
	if err != nil {
		return err
	}

	ch, err := ctx.Repos.Chores.Create(models.CreateChoreInput{
		Title:          c.Title,
		FamilyMemberID: m.ID,
		Icon:           icon,
		Points:         c.Points,
		Recurring:      rule,
	})
	if err != nil {
		return fmt.Errorf("failed to add chore: %w", err)
	}
	ctx.Printf("Added chore: %s for %s (ID: %s)\n", ch.Title, m.Name, ch.ID)
	ctx.Printf("  %d pts, %s\n", ch.Points, cli.FormatRecurrence(ch.Recurring))
	return nil
}

// iconFor maps a category to its icon. Icon names are accepted as is.
func iconFor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if icon, ok := models.ChoreIcons[s]; ok {
		return icon, nil
	}
	for _, icon := range models.ChoreIcons {
		if icon == s {
			return icon, nil
		}
	}

	categories := make([]string, 0, len(models.ChoreIcons))
	for k := range models.ChoreIcons {
		categories = append(categories, k)
	}
	slices.Sort(categories)
	if guess := cli.Suggest(s, categories); guess != "" {
		return "", fmt.Errorf("unknown icon category %q; did you mean %q?", s, guess)
	}
	return "", fmt.Errorf("unknown icon category %q (one of %s)", s, strings.Join(categories, ", "))
}

type ChoreIconsCmd struct{}

func (c *ChoreIconsCmd) Run(ctx *cli.Context) error {
	categories := make([]string, 0, len(models.ChoreIcons))
	for k := range models.ChoreIcons {
		categories = append(categories, k)
	}
	slices.Sort(categories)
	for _, k := range categories {
		ctx.Printf("  %-10s %s\n", k, models.ChoreIcons[k])
	}
	return nil
}
