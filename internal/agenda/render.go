package agenda

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

// themeColors maps the named theme colours to ANSI colours.
var themeColors = map[string]lipgloss.Color{
	"primary":   lipgloss.Color("12"),
	"secondary": lipgloss.Color("13"),
	"accent":    lipgloss.Color("14"),
	"neutral":   lipgloss.Color("8"),
	"info":      lipgloss.Color("6"),
	"success":   lipgloss.Color("2"),
	"warning":   lipgloss.Color("3"),
	"error":     lipgloss.Color("1"),
}

var (
	dayStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
)

// Color turns a stored colour (theme name or hex) into a terminal colour.
func Color(c string) lipgloss.Color {
	if tc, ok := themeColors[c]; ok {
		return tc
	}
	return lipgloss.Color(c)
}

// Lookup resolves ids to the names and colours shown in the agenda.
type Lookup struct {
	Members   map[string]models.FamilyMember
	Calendars map[string]models.Calendar
	// ShowKeys appends each occurrence key, for commands that take one.
	ShowKeys bool
}

func NewLookup(members []models.FamilyMember, calendars []models.Calendar) Lookup {
	l := Lookup{
		Members:   make(map[string]models.FamilyMember, len(members)),
		Calendars: make(map[string]models.Calendar, len(calendars)),
	}
	for _, m := range members {
		l.Members[m.ID] = m
	}
	for _, c := range calendars {
		l.Calendars[c.ID] = c
	}
	return l
}

func (l Lookup) key(k recurrence.Key) string {
	if !l.ShowKeys {
		return ""
	}
	return "  " + labelStyle.Render(k.String())
}

func (l Lookup) member(id string) string {
	m, ok := l.Members[id]
	if !ok {
		return "unknown"
	}
	return lipgloss.NewStyle().Foreground(Color(m.Color)).Render(m.Name)
}

func (l Lookup) calendar(ev models.Event) string {
	cal, ok := l.Calendars[ev.CalendarID]
	name, color := "unknown", ev.Color
	if ok {
		name = cal.Name
		if color == "" {
			color = cal.Color
		}
	}
	return lipgloss.NewStyle().Foreground(Color(color)).Render(name)
}

// Render writes days as a plain-text agenda.
func Render(w io.Writer, days []Day, l Lookup) error {
	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dayStyle.Render(d.Date.Format("Mon Jan 02 2006")))
		b.WriteString("\n")

		if len(d.Events) == 0 && len(d.Chores) == 0 {
			b.WriteString(labelStyle.Render("  nothing scheduled"))
			b.WriteString("\n")
			continue
		}

		for _, ev := range d.Events {
			when := "all day    "
			if !ev.Event.AllDay {
				when = ev.Event.StartTime.In(d.Date.Location()).Format(constants.TimeFormat) + "-" +
					ev.Event.EndTime.In(d.Date.Location()).Format(constants.TimeFormat)
			}
			fmt.Fprintf(&b, "  %s  %s [%s]%s\n", when, ev.Event.Title, l.calendar(ev.Event), l.key(ev.Key))
		}

		for _, ch := range d.Chores {
			box, title := "[ ]", ch.Chore.Title
			if ch.Completed {
				box, title = "[x]", doneStyle.Render(title)
			}
			line := fmt.Sprintf("  %s %s (%s", box, title, l.member(ch.Chore.FamilyMemberID))
			if ch.Chore.Points > 0 {
				line += fmt.Sprintf(", %d pts", ch.Chore.Points)
			}
			line += ")"
			if ch.Completed && ch.CompletedBy != "" && ch.CompletedBy != ch.Chore.FamilyMemberID {
				line += labelStyle.Render(" done by ") + l.member(ch.CompletedBy)
			}
			b.WriteString(line + l.key(ch.Key) + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderConflicts writes one line per conflicting pair.
func RenderConflicts(w io.Writer, conflicts []Conflict) error {
	var b strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&b, "  %s %s overlaps %s %s\n",
			c.A.Event.StartTime.Format(constants.DateTimeFormat), c.A.Event.Title,
			c.B.Event.StartTime.Format(constants.DateTimeFormat), c.B.Event.Title)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Swatch renders text in the given theme or hex colour.
func Swatch(text, color string) string {
	return lipgloss.NewStyle().Foreground(Color(color)).Render(text)
}
