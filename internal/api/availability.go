package api

import (
	"context"
	"fmt"
)

type availabilityResponse struct {
	Status       string         `json:"status"`
	Availability []Availability `json:"availability"`
}

// DoctorAvailability fetches a doctor's schedule slots. Booked slots carry
// the patient's display name; free slots leave it empty.
func (c *Client) DoctorAvailability(ctx context.Context, doctorID int) ([]Availability, error) {
	var resp availabilityResponse
	if err := c.Get(ctx, fmt.Sprintf("/availability/doctor/%d", doctorID), &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess {
		return nil, &Error{Kind: KindMalformed, Message: "availability response missing success status"}
	}
	return resp.Availability, nil
}
