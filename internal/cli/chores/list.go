package chores

import (
	"fmt"
	"time"

	"github.com/bfsmith/family-calendar/internal/agenda"
	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

type ChoreListCmd struct {
	Member    string `short:"m" help:"Only chores assigned to this member."`
	Title     string `short:"t" help:"Case-insensitive title filter."`
	Recurring bool   `help:"Only recurring chores."`
	All       bool   `help:"Include one-off chores that are already done."`
	Limit     int    `short:"n" help:"Maximum number of chores to show."`
	Offset    int    `help:"Number of chores to skip."`
	ShowIDs   bool   `help:"Show chore IDs." name:"show-ids"`
}

func (c *ChoreListCmd) Run(ctx *cli.Context) error {
	q := models.ChoreQuery{
		Title:                  c.Title,
		RecurringOnly:          c.Recurring,
		IncludeAllNonRecurring: c.All,
		Limit:                  c.Limit,
		Offset:                 c.Offset,
	}
	if c.Member != "" {
		m, err := ctx.ResolveMember(c.Member)
		if err != nil {
			return err
		}
		q.FamilyMemberID = m.ID
	}

	list, err := ctx.Repos.Chores.Query(q)
	if err != nil {
		return fmt.Errorf("failed to get chores: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No chores found")
		return nil
	}

	members, err := memberLookup(ctx)
	if err != nil {
		return err
	}

	ctx.Println("Chores:")
	for _, occ := range list {
		ch := occ.Chore
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", ch.ID)
		}
		ctx.Printf("  %s%s - %s, %d pts (%s)\n", ch.Title, idStr, members(ch.FamilyMemberID), ch.Points, cli.FormatRecurrence(ch.Recurring))
	}
	return nil
}

// memberLookup returns a function naming a member in their colour.
func memberLookup(ctx *cli.Context) (func(string) string, error) {
	all, err := ctx.Repos.Members.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}
	byID := make(map[string]models.FamilyMember, len(all))
	for _, m := range all {
		byID[m.ID] = m
	}
	return func(id string) string {
		m, ok := byID[id]
		if !ok {
			return "?"
		}
		return agenda.Swatch(m.Name, m.Color)
	}, nil
}

type ChoreDayCmd struct {
	Date     string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Member   string `short:"m" help:"Only chores assigned to this member."`
	ShowKeys bool   `help:"Show occurrence keys." name:"show-keys"`
}

func (c *ChoreDayCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	memberID := ""
	if c.Member != "" {
		m, err := ctx.ResolveMember(c.Member)
		if err != nil {
			return err
		}
		memberID = m.ID
	}

	days, err := choreDays(ctx, day, 1, memberID)
	if err != nil {
		return err
	}
	lookup, err := lookupAll(ctx)
	if err != nil {
		return err
	}
	lookup.ShowKeys = c.ShowKeys
	return agenda.Render(ctx.Out, days, lookup)
}

// choreDays lays out the chores due in the days starting at from.
func choreDays(ctx *cli.Context, from time.Time, n int, memberID string) ([]agenda.Day, error) {
	start, end := agenda.Range(from, n)
	occs, err := ctx.Repos.Chores.Query(models.ChoreQuery{Start: &start, End: &end, FamilyMemberID: memberID})
	if err != nil {
		return nil, fmt.Errorf("failed to get chores: %w", err)
	}
	comps, err := ctx.Repos.Chores.AllCompletions(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get completions: %w", err)
	}
	return agenda.Build(from, n, nil, occs, comps), nil
}

func lookupAll(ctx *cli.Context) (agenda.Lookup, error) {
	members, err := ctx.Repos.Members.GetAll()
	if err != nil {
		return agenda.Lookup{}, err
	}
	cals, err := ctx.Repos.Calendars.GetAll()
	if err != nil {
		return agenda.Lookup{}, err
	}
	return agenda.NewLookup(members, cals), nil
}

type ChorePointsCmd struct {
	From string `help:"First day (YYYY-MM-DD)." default:"today"`
	Days int    `short:"d" help:"Number of days to total." default:"7"`
}

func (c *ChorePointsCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	from, err := ctx.ParseDate(c.From)
	if err != nil {
		return err
	}
	days, err := choreDays(ctx, from, c.Days, "")
	if err != nil {
		return err
	}

	members, err := ctx.Repos.Members.GetAll()
	if err != nil {
		return err
	}
	totals := agenda.Points(days)
	last := recurrence.AddDays(from, c.Days-1)
	ctx.Printf("Points %s - %s:\n", from.Format("2006-01-02"), last.Format("2006-01-02"))
	for _, m := range members {
		ctx.Printf("  %-12s %d\n", m.Name, totals[m.ID])
	}
	return nil
}
