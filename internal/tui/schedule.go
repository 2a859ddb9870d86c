package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medport/medport/internal/api"
)

// scheduleKeys are the key bindings for the schedule view
type scheduleKeys struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Quit     key.Binding
}

func defaultScheduleKeys() scheduleKeys {
	return scheduleKeys{
		PrevWeek: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next week"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScheduleModel is an interactive week view over a doctor's slots
type ScheduleModel struct {
	doctorName string
	slots      []api.Availability
	weekStart  time.Time
	keys       scheduleKeys
	styles     Styles
}

// NewScheduleModel builds a schedule view centered on the week containing from
func NewScheduleModel(doctorName string, slots []api.Availability, from time.Time) ScheduleModel {
	return ScheduleModel{
		doctorName: doctorName,
		slots:      slots,
		weekStart:  WeekStart(from),
		keys:       defaultScheduleKeys(),
		styles:     DefaultStyles(),
	}
}

func (m ScheduleModel) Init() tea.Cmd {
	return nil
}

func (m ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevWeek):
			m.weekStart = m.weekStart.AddDate(0, 0, -7)
		case key.Matches(msg, m.keys.NextWeek):
			m.weekStart = m.weekStart.AddDate(0, 0, 7)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ScheduleModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Schedule: "+m.doctorName) + "\n\n")
	b.WriteString(RenderWeek(m.slots, m.weekStart, m.styles))
	b.WriteString("\n" + m.styles.Subtle.Render("←/→ change week · q quit") + "\n")
	return b.String()
}

// RunScheduleView runs the interactive week view until the user quits,
// starting on the week containing from.
func RunScheduleView(doctorName string, slots []api.Availability, from time.Time) error {
	model := NewScheduleModel(doctorName, slots, from)
	_, err := tea.NewProgram(model).Run()
	return err
}

// WeekStart returns the Monday 00:00 of the week containing t
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// RenderWeek draws one week of slots as a day-per-column grid. Booked slots
// show the patient name, free ones are marked as such.
func RenderWeek(slots []api.Availability, weekStart time.Time, styles Styles) string {
	byDay := make(map[int][]api.Availability)
	for _, s := range slots {
		start, err := ParseSlotStart(s)
		if err != nil {
			continue
		}
		idx := dayIndex(start, weekStart)
		if idx < 0 {
			continue
		}
		byDay[idx] = append(byDay[idx], s)
	}

	columns := make([]string, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		lines := []string{styles.Header.Render(date.Format("Mon 02.01"))}

		daySlots := byDay[i]
		sort.Slice(daySlots, func(a, b int) bool {
			return daySlots[a].StartTime < daySlots[b].StartTime
		})
		for _, s := range daySlots {
			label := fmt.Sprintf("%s %s", SlotLabel(s), slotStatus(s))
			if s.PatientName != "" {
				lines = append(lines, styles.Booked.Render(label))
			} else {
				lines = append(lines, styles.Free.Render(label))
			}
		}
		if len(daySlots) == 0 {
			lines = append(lines, styles.Subtle.Render("no slots"))
		}

		columns[i] = styles.Border.Render(strings.Join(lines, "\n"))
	}

	header := styles.Subtle.Render(fmt.Sprintf("Week of %s", weekStart.Format("2 January 2006")))
	grid := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return header + "\n" + grid
}

// dayIndex returns which column of the week t falls in, or -1 when it lies
// outside the week. Calendar dates are compared rather than elapsed hours so
// a clock-change day does not shift slots into the wrong column.
func dayIndex(t, weekStart time.Time) int {
	local := t.In(weekStart.Location())
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, weekStart.Location())
	for i := 0; i < 7; i++ {
		if day.Equal(weekStart.AddDate(0, 0, i)) {
			return i
		}
	}
	return -1
}

func slotStatus(s api.Availability) string {
	if s.PatientName != "" {
		return s.PatientName
	}
	return "free"
}
