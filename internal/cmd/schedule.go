package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/tui"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [doctor-id]",
	Short: "Show a doctor's weekly schedule",
	Long: `Show a doctor's schedule as a week grid.

Doctors see their own schedule by default. Patients pass the doctor's id,
which 'medport doctors' lists.

Examples:
  medport schedule            # doctors: own schedule
  medport schedule 3          # schedule of doctor 3
  medport schedule 3 --week 1 # next week`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := requireSession(cmd)
		if err != nil {
			return err
		}

		var doctorID int
		switch {
		case len(args) == 1:
			doctorID, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("doctor id must be a number, got %q", args[0])
			}
		case s.IsDoctor() && s.DoctorID != nil:
			doctorID = *s.DoctorID
		default:
			return fmt.Errorf("doctor id required, see 'medport doctors'")
		}

		client := getClient()
		slots, err := client.DoctorAvailability(cmd.Context(), doctorID)
		if err != nil {
			return fmt.Errorf("load schedule: %w", err)
		}

		name := doctorName(cmd, doctorID)
		offset, _ := cmd.Flags().GetInt("week")
		from := scheduleWeek(time.Now(), offset)

		if tui.IsInteractive() {
			return tui.RunScheduleView(name, slots, from)
		}

		// Piped output gets the requested week as a static grid
		fmt.Println(tui.RenderWeek(slots, from, tui.DefaultStyles()))
		return nil
	},
}

// scheduleWeek resolves the Monday of the week offset weeks away from now
func scheduleWeek(now time.Time, offset int) time.Time {
	return tui.WeekStart(now).AddDate(0, 0, 7*offset)
}

// doctorName looks up a display name for the doctor, falling back to the id
func doctorName(cmd *cobra.Command, doctorID int) string {
	doctors, err := getClient().Doctors(cmd.Context())
	if err == nil {
		for _, d := range doctors {
			if d.ID == doctorID {
				return tui.DoctorLabel(d)
			}
		}
	}
	return fmt.Sprintf("doctor %d", doctorID)
}

func init() {
	scheduleCmd.Flags().Int("week", 0, "week offset from the current week (1 = next week, -1 = last week)")
	rootCmd.AddCommand(scheduleCmd)
}
