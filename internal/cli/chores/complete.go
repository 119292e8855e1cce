package chores

import (
	"fmt"
	"strings"
	"time"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

// target is one chore occurrence named on the command line.
type target struct {
	chore models.Chore
	key   recurrence.Key
	at    time.Time
}

// resolveOccurrence accepts an occurrence key, or a chore reference plus a
// day. A recurring chore must be due exactly once that day.
func resolveOccurrence(ctx *cli.Context, ref, date string) (target, error) {
	if key := recurrence.ParseKey(ref); key.Derived {
		if ch, err := ctx.Repos.Chores.Get(key.BaseID); err == nil {
			return target{chore: ch, key: key, at: key.Time()}, nil
		}
	}

	ch, err := ctx.ResolveChore(ref)
	if err != nil {
		return target{}, err
	}
	day, err := ctx.ParseDate(date)
	if err != nil {
		return target{}, err
	}

	if ch.Recurring == nil {
		return target{chore: ch, key: recurrence.CanonicalKey(ch.ID), at: day}, nil
	}

	occs := recurrence.Expand(recurrence.ChoreRecord(ch), day, recurrence.AddDays(day, 1))
	switch len(occs) {
	case 0:
		return target{}, fmt.Errorf("%s is not due on %s", ch.Title, day.Format("2006-01-02"))
	case 1:
		return target{chore: ch, key: occs[0].Key, at: occs[0].Start}, nil
	}
	keys := make([]string, 0, len(occs))
	for _, o := range occs {
		keys = append(keys, fmt.Sprintf("%s (%s)", o.Key, o.Start.In(ctx.Location).Format("15:04")))
	}
	return target{}, fmt.Errorf("%s is due %d times on %s; pass one of:\n  %s",
		ch.Title, len(occs), day.Format("2006-01-02"), strings.Join(keys, "\n  "))
}

func completer(ctx *cli.Context, by string) (string, error) {
	if by == "" {
		return "", nil
	}
	m, err := ctx.ResolveMember(by)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

type ChoreCompleteCmd struct {
	Chore string `arg:"" help:"Occurrence key, or chore ID or title."`
	Date  string `short:"d" help:"Day of the occurrence when a chore is named." default:"today"`
	By    string `short:"b" help:"Member who did it. Defaults to the assignee."`
}

func (c *ChoreCompleteCmd) Run(ctx *cli.Context) error {
	t, err := resolveOccurrence(ctx, c.Chore, c.Date)
	if err != nil {
		return err
	}
	by, err := completer(ctx, c.By)
	if err != nil {
		return err
	}

	done, err := ctx.Repos.Chores.IsCompleted(t.chore.ID, t.at)
	if err != nil {
		return err
	}
	if done {
		ctx.Printf("%s is already complete for %s\n", t.chore.Title, t.at.In(ctx.Location).Format("2006-01-02 15:04"))
		return nil
	}
	if _, err := ctx.Repos.Chores.MarkComplete(t.chore.ID, by, t.at); err != nil {
		return fmt.Errorf("failed to complete chore: %w", err)
	}
	ctx.Printf("✓ Completed %s (+%d pts)\n", t.chore.Title, t.chore.Points)
	return nil
}

type ChoreUncompleteCmd struct {
	Chore string `arg:"" help:"Occurrence key, or chore ID or title."`
	Date  string `short:"d" help:"Day of the occurrence when a chore is named." default:"today"`
}

func (c *ChoreUncompleteCmd) Run(ctx *cli.Context) error {
	t, err := resolveOccurrence(ctx, c.Chore, c.Date)
	if err != nil {
		return err
	}
	n, err := ctx.Repos.Chores.RemoveCompletion(t.chore.ID, t.at)
	if err != nil {
		return fmt.Errorf("failed to remove completion: %w", err)
	}
	if n == 0 {
		ctx.Printf("%s was not complete for %s\n", t.chore.Title, t.at.In(ctx.Location).Format("2006-01-02 15:04"))
		return nil
	}
	ctx.Printf("Marked %s as not done\n", t.chore.Title)
	return nil
}

type ChoreToggleCmd struct {
	Chore string `arg:"" help:"Occurrence key, or chore ID or title."`
	Date  string `short:"d" help:"Day of the occurrence when a chore is named." default:"today"`
	By    string `short:"b" help:"Member who did it. Defaults to the assignee."`
}

func (c *ChoreToggleCmd) Run(ctx *cli.Context) error {
	t, err := resolveOccurrence(ctx, c.Chore, c.Date)
	if err != nil {
		return err
	}
	by, err := completer(ctx, c.By)
	if err != nil {
		return err
	}

	done, err := ctx.Repos.Chores.ToggleCompletion(t.key, by, t.at)
	if err != nil {
		return fmt.Errorf("failed to toggle chore: %w", err)
	}
	if done {
		ctx.Printf("✓ Completed %s (+%d pts)\n", t.chore.Title, t.chore.Points)
	} else {
		ctx.Printf("Marked %s as not done\n", t.chore.Title)
	}
	return nil
}

type ChoreHistoryCmd struct {
	Chore string `arg:"" help:"Chore ID or title."`
	From  string `help:"Only completions on or after this date."`
	To    string `help:"Only completions up to and including this date."`
}

func (c *ChoreHistoryCmd) Run(ctx *cli.Context) error {
	ch, err := ctx.ResolveChore(c.Chore)
	if err != nil {
		return err
	}

	var from, to *time.Time
	if c.From != "" {
		d, err := ctx.ParseDate(c.From)
		if err != nil {
			return err
		}
		from = &d
	}
	if c.To != "" {
		d, err := ctx.ParseDate(c.To)
		if err != nil {
			return err
		}
		d = recurrence.AddDays(d, 1)
		to = &d
	}

	comps, err := ctx.Repos.Chores.Completions(ch.ID, from, to)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	if len(comps) == 0 {
		ctx.Printf("%s has no completions\n", ch.Title)
		return nil
	}

	members, err := memberLookup(ctx)
	if err != nil {
		return err
	}
	ctx.Printf("%s (%d completions):\n", ch.Title, len(comps))
	for _, comp := range comps {
		ctx.Printf("  %s  by %s, recorded %s\n",
			comp.OccurrenceDate.In(ctx.Location).Format("Mon 2006-01-02 15:04"),
			members(comp.FamilyMemberID),
			comp.CompletedAt.In(ctx.Location).Format("2006-01-02 15:04"))
	}
	return nil
}
