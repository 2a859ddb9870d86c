package api

import (
	"context"
	"fmt"
)

// BookAppointmentRequest is the payload the booking wizard submits
type BookAppointmentRequest struct {
	DoctorID  int    `json:"doctor_id"`
	PatientID int    `json:"patient_id"`
	StartTime string `json:"start_time"`
	VisitType string `json:"visit_type"`
	Reason    string `json:"reason"`
}

type appointmentResponse struct {
	Status      string       `json:"status"`
	Appointment *Appointment `json:"appointment"`
}

type appointmentsResponse struct {
	Status       string        `json:"status"`
	Appointments []Appointment `json:"appointments"`
}

// BookAppointment books a visit and returns the created appointment
func (c *Client) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*Appointment, error) {
	var resp appointmentResponse
	if err := c.Post(ctx, "/appointments", req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess || resp.Appointment == nil {
		return nil, &Error{Kind: KindMalformed, Message: "appointment response missing appointment"}
	}
	return resp.Appointment, nil
}

// PatientAppointments lists a patient's booked visits
func (c *Client) PatientAppointments(ctx context.Context, patientID int) ([]Appointment, error) {
	var resp appointmentsResponse
	if err := c.Get(ctx, fmt.Sprintf("/appointments/patient/%d", patientID), &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess {
		return nil, &Error{Kind: KindMalformed, Message: "appointments response missing success status"}
	}
	return resp.Appointments, nil
}

// CancelAppointment cancels a booked visit
func (c *Client) CancelAppointment(ctx context.Context, appointmentID int) error {
	return c.Delete(ctx, fmt.Sprintf("/appointments/%d", appointmentID), nil)
}
