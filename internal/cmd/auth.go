package cmd

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication with the portal",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the portal",
	Long: `Authenticate with the portal and persist the session token locally.

Credentials can be passed as flags or entered interactively.

Examples:
  medport auth login
  medport auth login --email jan@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--email is required in non-interactive mode")
			}
			email, err = tui.PromptForString("Email", "jan@example.com", true)
			if err != nil {
				return err
			}
		}
		if password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--password is required in non-interactive mode")
			}
			password, err = tui.PromptForPassword("Password")
			if err != nil {
				return err
			}
		}

		client := getClient()
		resp, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		store, err := getTokenStore()
		if err != nil {
			return err
		}
		if err := store.Save(resp.Token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}

		// Force a fresh resolution so the enriched profile id is available
		// to any command chained after login.
		mgr, err := getSessionManager()
		if err != nil {
			return err
		}
		mgr.Clear()

		styles := tui.DefaultStyles()
		fmt.Println(styles.Success.Render("Logged in."))
		fmt.Printf("User ID: %d\nRole: %s\n", resp.UserID, roleLabel(resp.Role))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getTokenStore()
		if err != nil {
			return err
		}
		if err := store.Delete(); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}

		mgr, err := getSessionManager()
		if err != nil {
			return err
		}
		mgr.Clear()
		getClient().SetToken("")

		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := getSessionManager()
		if err != nil {
			return err
		}

		s := mgr.Ensure(cmd.Context())
		if s == nil {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'medport auth login' to authenticate.")
			return nil
		}

		styles := tui.DefaultStyles()
		fmt.Println(styles.Success.Render("Logged in."))
		fmt.Printf("User ID: %d\n", s.UserID)
		fmt.Printf("Role: %s\n", roleLabel(s.Role))
		if s.DoctorID != nil {
			fmt.Printf("Doctor ID: %d\n", *s.DoctorID)
		}
		if s.PatientID != nil {
			fmt.Printf("Patient ID: %d\n", *s.PatientID)
		}

		if expiry := tokenExpiry(getClient().Token()); expiry != "" {
			fmt.Printf("Token expires: %s\n", expiry)
		}
		return nil
	},
}

// tokenExpiry pulls the exp claim out of the token without verifying the
// signature; verification is the backend's job, this is display only.
func tokenExpiry(token string) string {
	if token == "" {
		return ""
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	return exp.Format("2006-01-02 15:04:05 MST")
}

// roleLabel maps backend role names to display names
func roleLabel(role string) string {
	switch role {
	case api.RoleDoctor:
		return "doctor"
	case api.RolePatient:
		return "patient"
	default:
		return role
	}
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
