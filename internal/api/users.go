package api

import (
	"context"
	"fmt"
)

type doctorResponse struct {
	Status string  `json:"status"`
	Doctor *Doctor `json:"doctor"`
}

type doctorsResponse struct {
	Status  string   `json:"status"`
	Doctors []Doctor `json:"doctors"`
}

type patientResponse struct {
	Status  string   `json:"status"`
	Patient *Patient `json:"patient"`
}

// DoctorProfile fetches the doctor record attached to a user account
func (c *Client) DoctorProfile(ctx context.Context, userID int) (*Doctor, error) {
	var resp doctorResponse
	if err := c.Get(ctx, fmt.Sprintf("/user/doctor/%d", userID), &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess || resp.Doctor == nil {
		return nil, &Error{Kind: KindMalformed, Message: "doctor profile response missing doctor"}
	}
	return resp.Doctor, nil
}

// PatientProfile fetches the patient record attached to a user account
func (c *Client) PatientProfile(ctx context.Context, userID int) (*Patient, error) {
	var resp patientResponse
	if err := c.Get(ctx, fmt.Sprintf("/user/patient/%d", userID), &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess || resp.Patient == nil {
		return nil, &Error{Kind: KindMalformed, Message: "patient profile response missing patient"}
	}
	return resp.Patient, nil
}

// PatientProfilePatch holds the editable subset of a patient profile.
// Nil fields are left untouched by the backend.
type PatientProfilePatch struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Street     *string `json:"street,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	City       *string `json:"city,omitempty"`
}

// UpdatePatientProfile applies a partial update to a patient profile and
// returns the updated record.
func (c *Client) UpdatePatientProfile(ctx context.Context, userID int, patch PatientProfilePatch) (*Patient, error) {
	var resp patientResponse
	if err := c.Patch(ctx, fmt.Sprintf("/user/patient/%d", userID), patch, &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess || resp.Patient == nil {
		return nil, &Error{Kind: KindMalformed, Message: "patient profile response missing patient"}
	}
	return resp.Patient, nil
}

// Doctors lists the doctors patients can book with
func (c *Client) Doctors(ctx context.Context) ([]Doctor, error) {
	var resp doctorsResponse
	if err := c.Get(ctx, "/user/doctors", &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess {
		return nil, &Error{Kind: KindMalformed, Message: "doctors response missing success status"}
	}
	return resp.Doctors, nil
}
