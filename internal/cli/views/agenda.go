package views

import (
	"fmt"
	"slices"

	"github.com/bfsmith/family-calendar/internal/agenda"
	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/repository"
)

type AgendaCmd struct {
	Date      string `arg:"" optional:"" help:"First day (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Days      int    `short:"d" help:"Number of days to show." default:"1"`
	Week      bool   `short:"W" help:"Show the seven days starting at the date."`
	Calendar  string `short:"c" help:"Only events on this calendar."`
	Member    string `short:"m" help:"Only chores assigned to this member."`
	Conflicts bool   `help:"List overlapping events after the agenda."`
	Points    bool   `help:"Total points earned in the range."`
	ShowKeys  bool   `help:"Show occurrence keys." name:"show-keys"`
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if c.Week {
		days = 7
	}
	if days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	from, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	calendarID, memberID := "", ""
	if c.Calendar != "" {
		cal, err := ctx.ResolveCalendar(c.Calendar)
		if err != nil {
			return err
		}
		calendarID = cal.ID
	}
	if c.Member != "" {
		m, err := ctx.ResolveMember(c.Member)
		if err != nil {
			return err
		}
		memberID = m.ID
	}

	start, end := agenda.Range(from, days)
	events, err := ctx.Repos.Events.Occurrences(start, end, calendarID)
	if err != nil {
		return fmt.Errorf("failed to expand events: %w", err)
	}
	chores, err := ctx.Repos.Chores.Query(models.ChoreQuery{Start: &start, End: &end, FamilyMemberID: memberID})
	if err != nil {
		return fmt.Errorf("failed to expand chores: %w", err)
	}
	comps, err := ctx.Repos.Chores.AllCompletions(start, end)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	members, err := ctx.Repos.Members.GetAll()
	if err != nil {
		return err
	}
	cals, err := ctx.Repos.Calendars.GetAll()
	if err != nil {
		return err
	}
	lookup := agenda.NewLookup(members, cals)
	lookup.ShowKeys = c.ShowKeys

	laid := agenda.Build(from, days, events, chores, comps)
	if err := agenda.Render(ctx.Out, laid, lookup); err != nil {
		return err
	}

	if c.Points {
		printPoints(ctx, agenda.Points(laid), members)
	}
	if c.Conflicts {
		printConflicts(ctx, events)
	}
	return nil
}

func printPoints(ctx *cli.Context, totals map[string]int, members []models.FamilyMember) {
	ctx.Println("\nPoints:")
	ranked := slices.Clone(members)
	slices.SortStableFunc(ranked, func(a, b models.FamilyMember) int {
		return totals[b.ID] - totals[a.ID]
	})
	for _, m := range ranked {
		ctx.Printf("  %-12s %d\n", agenda.Swatch(m.Name, m.Color), totals[m.ID])
	}
}

func printConflicts(ctx *cli.Context, events []repository.EventOccurrence) {
	conflicts := agenda.Conflicts(events)
	if len(conflicts) == 0 {
		ctx.Println("\nNo conflicts.")
		return
	}
	ctx.Printf("\n%d conflicts:\n", len(conflicts))
	_ = agenda.RenderConflicts(ctx.Out, conflicts)
}
