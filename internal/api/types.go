package api

// StatusSuccess is the discriminator every success envelope carries
const StatusSuccess = "success"

// Roles the backend is known to assign. The set is open; unknown roles pass
// through untouched.
const (
	RoleDoctor  = "doctor"
	RolePatient = "user"
)

// Doctor is the doctor profile record
type Doctor struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
}

// Patient is the patient profile record
type Patient struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Pesel      string `json:"pesel"`
	BirthDate  string `json:"birth_date"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// Availability is one bookable or booked slot in a doctor's schedule.
// StartTime and EndTime are RFC 3339 timestamps as sent by the backend.
type Availability struct {
	ID          int    `json:"id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	PatientName string `json:"patient_name"`
}

// Appointment is a booked visit from the patient's point of view
type Appointment struct {
	ID         int    `json:"id"`
	DoctorID   int    `json:"doctor_id"`
	PatientID  int    `json:"patient_id"`
	DoctorName string `json:"doctor_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	VisitType  string `json:"visit_type"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
}
