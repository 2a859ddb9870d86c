package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/tui"
)

var visitsCmd = &cobra.Command{
	Use:   "visits",
	Short: "List your booked visits",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := requirePatient(cmd)
		if err != nil {
			return err
		}

		appts, err := getClient().PatientAppointments(cmd.Context(), *s.PatientID)
		if err != nil {
			return fmt.Errorf("list visits: %w", err)
		}
		if len(appts) == 0 {
			fmt.Println("No visits booked.")
			return nil
		}

		styles := tui.DefaultStyles()
		fmt.Println(styles.Title.Render("Your visits"))
		for _, a := range appts {
			fmt.Printf("  %s  %s  %s  %s\n",
				styles.Subtle.Render(fmt.Sprintf("[%d]", a.ID)),
				visitTime(a),
				styles.Value.Render(a.DoctorName),
				styles.Subtle.Render(a.VisitType))
		}
		return nil
	},
}

var visitsCancelCmd = &cobra.Command{
	Use:   "cancel <visit-id>",
	Short: "Cancel a booked visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requirePatient(cmd); err != nil {
			return err
		}

		visitID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("visit id must be a number, got %q", args[0])
		}

		if tui.IsInteractive() {
			confirmed, err := tui.PromptForConfirmation(fmt.Sprintf("Cancel visit %d?", visitID), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Kept the visit.")
				return nil
			}
		}

		if err := getClient().CancelAppointment(cmd.Context(), visitID); err != nil {
			return fmt.Errorf("cancel visit: %w", err)
		}
		fmt.Printf("Visit %d cancelled.\n", visitID)
		return nil
	},
}

// visitTime formats an appointment's start for the listing
func visitTime(a api.Appointment) string {
	start, err := time.Parse(time.RFC3339, a.StartTime)
	if err != nil {
		return a.StartTime
	}
	return start.Format("Mon 02.01 15:04")
}

func init() {
	visitsCmd.AddCommand(visitsCancelCmd)
	rootCmd.AddCommand(visitsCmd)
}
