package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/tui"
)

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "List doctors available for booking",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireSession(cmd); err != nil {
			return err
		}

		doctors, err := getClient().Doctors(cmd.Context())
		if err != nil {
			return fmt.Errorf("list doctors: %w", err)
		}
		if len(doctors) == 0 {
			fmt.Println("No doctors available.")
			return nil
		}

		styles := tui.DefaultStyles()
		fmt.Println(styles.Title.Render("Doctors"))
		for _, d := range doctors {
			fmt.Printf("  %s  %s\n", styles.Subtle.Render(fmt.Sprintf("[%d]", d.ID)), tui.DoctorLabel(d))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorsCmd)
}
