package tui

import (
	"strings"
	"testing"
)

func TestStylesKeepMessageText(t *testing.T) {
	styles := DefaultStyles()

	// Rendering may add colour codes but must never swallow the text; the
	// error style in particular carries the CLI's final error line.
	tests := []struct {
		name     string
		rendered string
		want     string
	}{
		{name: "Error", rendered: styles.Error.Render("Error: booking failed"), want: "booking failed"},
		{name: "Success", rendered: styles.Success.Render("Logged in."), want: "Logged in."},
		{name: "Title", rendered: styles.Title.Render("Doctors"), want: "Doctors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.rendered, tt.want) {
				t.Errorf("%s style dropped the message: %q", tt.name, tt.rendered)
			}
		})
	}
}
