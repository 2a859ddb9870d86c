// Package session resolves and caches the identity of the current portal
// user. Resolution happens at most once per process; every surface that needs
// to know "who is logged in" goes through the Manager.
package session

// Session is the in-memory resolved identity of the current user.
// UserID and Role are always populated on a non-nil Session; DoctorID and
// PatientID are best-effort enrichment and may stay nil even for a valid
// login.
type Session struct {
	UserID    int
	Role      string
	DoctorID  *int
	PatientID *int
}

// IsDoctor reports whether the session belongs to a doctor account
func (s *Session) IsDoctor() bool {
	return s != nil && s.Role == "doctor"
}

// IsPatient reports whether the session belongs to a patient account
func (s *Session) IsPatient() bool {
	return s != nil && s.Role == "user"
}
