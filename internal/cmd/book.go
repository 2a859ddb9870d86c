package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/tui"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a visit",
	Long: `Walk through booking a visit: pick a doctor, a free slot, the visit
type and a reason, then confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := requirePatient(cmd)
		if err != nil {
			return err
		}
		if !tui.IsInteractive() {
			return fmt.Errorf("booking is interactive, run it from a terminal")
		}

		client := getClient()
		doctors, err := client.Doctors(cmd.Context())
		if err != nil {
			return fmt.Errorf("list doctors: %w", err)
		}

		result, err := tui.RunBookingWizard(doctors, func(doctorID int) ([]api.Availability, error) {
			return client.DoctorAvailability(cmd.Context(), doctorID)
		})
		if err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Println("Booking cancelled.")
				return nil
			}
			return err
		}

		appt, err := client.BookAppointment(cmd.Context(), api.BookAppointmentRequest{
			DoctorID:  result.Doctor.ID,
			PatientID: *s.PatientID,
			StartTime: result.Slot.StartTime,
			VisitType: result.VisitType,
			Reason:    result.Reason,
		})
		if err != nil {
			return fmt.Errorf("book appointment: %w", err)
		}

		styles := tui.DefaultStyles()
		fmt.Println(styles.Success.Render(fmt.Sprintf("Booked visit %d with %s.", appt.ID, tui.DoctorLabel(result.Doctor))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
}
