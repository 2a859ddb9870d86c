package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/tui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your patient profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := requirePatient(cmd)
		if err != nil {
			return err
		}

		p, err := getClient().PatientProfile(cmd.Context(), s.UserID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		printProfile(p)
		return nil
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update your contact details",
	Long: `Update the editable parts of your patient profile. Only the flags you
pass are changed; everything else stays as it is.

Examples:
  medport profile edit --phone "+48 600 100 200"
  medport profile edit --street "Polna 12" --postal-code 61-001 --city Poznan`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := requirePatient(cmd)
		if err != nil {
			return err
		}

		patch := api.PatientProfilePatch{
			FirstName:  flagPtr(cmd, "first-name"),
			LastName:   flagPtr(cmd, "last-name"),
			Phone:      flagPtr(cmd, "phone"),
			Email:      flagPtr(cmd, "email"),
			Street:     flagPtr(cmd, "street"),
			PostalCode: flagPtr(cmd, "postal-code"),
			City:       flagPtr(cmd, "city"),
		}
		if patch == (api.PatientProfilePatch{}) {
			return fmt.Errorf("nothing to update, pass at least one flag")
		}

		p, err := getClient().UpdatePatientProfile(cmd.Context(), s.UserID, patch)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		fmt.Println(tui.DefaultStyles().Success.Render("Profile updated."))
		printProfile(p)
		return nil
	},
}

// flagPtr returns a pointer to the flag value when the flag was set, nil
// otherwise. The distinction matters: an unset flag leaves the field alone.
func flagPtr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func printProfile(p *api.Patient) {
	styles := tui.DefaultStyles()
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Printf("  %s %s\n", styles.Label.Render(fmt.Sprintf("%-12s", label+":")), value)
	}

	fmt.Println(styles.Title.Render("Patient profile"))
	row("Name", p.FirstName+" "+p.LastName)
	row("PESEL", p.Pesel)
	row("Born", p.BirthDate)
	row("Phone", p.Phone)
	row("Email", p.Email)
	row("Address", joinAddress(p))
}

func joinAddress(p *api.Patient) string {
	if p.Street == "" && p.City == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s %s", p.Street, p.PostalCode, p.City)
}

func init() {
	for _, name := range []string{"first-name", "last-name", "phone", "email", "street", "postal-code", "city"} {
		profileEditCmd.Flags().String(name, "", "new "+name)
	}

	profileCmd.AddCommand(profileEditCmd)
	rootCmd.AddCommand(profileCmd)
}
