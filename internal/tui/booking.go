package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/medport/medport/internal/api"
)

// ErrCancelled is returned when the user backs out of the wizard
var ErrCancelled = errors.New("booking cancelled")

// VisitTypes the portal accepts, in display order
var VisitTypes = []string{"consultation", "follow-up", "procedure"}

// visitTypeLabels maps visit types to their display labels
var visitTypeLabels = map[string]string{
	"consultation": "Consultation",
	"follow-up":    "Follow-up visit",
	"procedure":    "Procedure",
}

// BookingResult is the outcome of a completed booking wizard
type BookingResult struct {
	Doctor    api.Doctor
	Slot      api.Availability
	VisitType string
	Reason    string
}

// SlotLoader fetches the schedule slots for one doctor
type SlotLoader func(doctorID int) ([]api.Availability, error)

// SlotDay groups a doctor's free slots on one calendar day
type SlotDay struct {
	Date  time.Time
	Slots []api.Availability
}

// RunBookingWizard walks the user through the booking steps: doctor, day,
// time, visit details, confirmation. The slot list is loaded lazily once a
// doctor is chosen.
func RunBookingWizard(doctors []api.Doctor, loadSlots SlotLoader) (*BookingResult, error) {
	if len(doctors) == 0 {
		return nil, errors.New("no doctors available for booking")
	}

	doctor, err := selectDoctor(doctors)
	if err != nil {
		return nil, err
	}

	slots, err := loadSlots(doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	days := GroupSlotsByDay(FreeSlots(slots))
	if len(days) == 0 {
		return nil, fmt.Errorf("no free slots for %s", DoctorLabel(doctor))
	}

	slot, err := selectSlot(days)
	if err != nil {
		return nil, err
	}

	visitType, reason, err := visitDetails()
	if err != nil {
		return nil, err
	}

	result := &BookingResult{
		Doctor:    doctor,
		Slot:      slot,
		VisitType: visitType,
		Reason:    reason,
	}

	confirmed, err := confirmBooking(result)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, ErrCancelled
	}

	return result, nil
}

// selectDoctor runs the doctor-selection step
func selectDoctor(doctors []api.Doctor) (api.Doctor, error) {
	options := make([]huh.Option[int], len(doctors))
	for i, d := range doctors {
		options[i] = huh.NewOption(DoctorLabel(d), d.ID)
	}

	var doctorID int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Choose a doctor").
			Description("Pick the specialist you want to see").
			Options(options...).
			Value(&doctorID),
	))
	if err := form.Run(); err != nil {
		return api.Doctor{}, fmt.Errorf("prompt failed: %w", err)
	}

	for _, d := range doctors {
		if d.ID == doctorID {
			return d, nil
		}
	}
	return api.Doctor{}, errors.New("selected doctor not in list")
}

// selectSlot runs the day and time steps
func selectSlot(days []SlotDay) (api.Availability, error) {
	dayOptions := make([]huh.Option[int], len(days))
	for i, day := range days {
		label := fmt.Sprintf("%s (%d slots)", day.Date.Format("Monday, 2 January"), len(day.Slots))
		dayOptions[i] = huh.NewOption(label, i)
	}

	var dayIdx int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Choose a day").
			Options(dayOptions...).
			Value(&dayIdx),
	))
	if err := form.Run(); err != nil {
		return api.Availability{}, fmt.Errorf("prompt failed: %w", err)
	}

	day := days[dayIdx]
	timeOptions := make([]huh.Option[int], len(day.Slots))
	for i, slot := range day.Slots {
		timeOptions[i] = huh.NewOption(SlotLabel(slot), i)
	}

	var slotIdx int
	form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Choose a time").
			Options(timeOptions...).
			Value(&slotIdx),
	))
	if err := form.Run(); err != nil {
		return api.Availability{}, fmt.Errorf("prompt failed: %w", err)
	}

	return day.Slots[slotIdx], nil
}

// visitDetails runs the visit type and reason step
func visitDetails() (visitType, reason string, err error) {
	typeOptions := make([]huh.Option[string], len(VisitTypes))
	for i, vt := range VisitTypes {
		typeOptions[i] = huh.NewOption(visitTypeLabels[vt], vt)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Visit type").
			Options(typeOptions...).
			Value(&visitType),
		huh.NewText().
			Title("Reason for the visit").
			Description("Briefly describe why you are booking").
			Value(&reason).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("a reason is required")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}

	return visitType, strings.TrimSpace(reason), nil
}

// confirmBooking shows the summary and asks for final confirmation
func confirmBooking(r *BookingResult) (bool, error) {
	styles := DefaultStyles()

	var b strings.Builder
	write := func(label, value string) {
		b.WriteString(styles.Label.Render(label+": ") + styles.Value.Render(value) + "\n")
	}
	write("Doctor", DoctorLabel(r.Doctor))
	if start, err := ParseSlotStart(r.Slot); err == nil {
		write("Date", start.Format("Monday, 2 January 2006"))
		write("Time", start.Format("15:04"))
	}
	write("Type", visitTypeLabels[r.VisitType])
	write("Reason", r.Reason)

	fmt.Println(styles.Border.Render(b.String()))

	return PromptForConfirmation("Confirm this booking?", true)
}

// DoctorLabel formats a doctor for display
func DoctorLabel(d api.Doctor) string {
	name := strings.TrimSpace(d.FirstName + " " + d.LastName)
	if d.Specialization == "" {
		return "dr " + name
	}
	return fmt.Sprintf("dr %s (%s)", name, d.Specialization)
}

// SlotLabel formats a slot's start time for display
func SlotLabel(slot api.Availability) string {
	start, err := ParseSlotStart(slot)
	if err != nil {
		return slot.StartTime
	}
	return start.Format("15:04")
}

// ParseSlotStart parses a slot's RFC 3339 start timestamp
func ParseSlotStart(slot api.Availability) (time.Time, error) {
	return time.Parse(time.RFC3339, slot.StartTime)
}

// FreeSlots filters out slots that already have a patient
func FreeSlots(slots []api.Availability) []api.Availability {
	var free []api.Availability
	for _, s := range slots {
		if s.PatientName == "" {
			free = append(free, s)
		}
	}
	return free
}

// GroupSlotsByDay buckets slots by calendar day, both days and slots sorted
// chronologically. Slots with unparseable timestamps are dropped.
func GroupSlotsByDay(slots []api.Availability) []SlotDay {
	byDay := make(map[time.Time][]api.Availability)
	for _, s := range slots {
		start, err := ParseSlotStart(s)
		if err != nil {
			continue
		}
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		byDay[day] = append(byDay[day], s)
	}

	days := make([]SlotDay, 0, len(byDay))
	for date, daySlots := range byDay {
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].StartTime < daySlots[j].StartTime
		})
		days = append(days, SlotDay{Date: date, Slots: daySlots})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
