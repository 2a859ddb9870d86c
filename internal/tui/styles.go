package tui

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles shared by the medport views
type Styles struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Booked  lipgloss.Style
	Free    lipgloss.Style
	Border  lipgloss.Style
	Header  lipgloss.Style
}

// DefaultStyles returns the standard medport styling
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Booked:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Free:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
}
