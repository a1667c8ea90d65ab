package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateEventRequest_Validate(t *testing.T) {
	valid := CreateEventRequest{
		Kind: "workshop", Name: " WS ", Date: "31/12/2099", Location: "Room",
		Capacity: 2, Price: 100, Extra: "Notebook",
	}

	tests := []struct {
		name   string
		mutate func(r *CreateEventRequest)
		want   []string
	}{
		{name: "valid", mutate: func(r *CreateEventRequest) {}},
		{name: "blank name", mutate: func(r *CreateEventRequest) { r.Name = "   " }, want: []string{"name is required"}},
		{name: "zero capacity", mutate: func(r *CreateEventRequest) { r.Capacity = 0 }, want: []string{"capacity must be greater than 0"}},
		{name: "negative price", mutate: func(r *CreateEventRequest) { r.Price = -5 }, want: []string{"price must be greater than or equal to 0"}},
		{
			name:   "several fields",
			mutate: func(r *CreateEventRequest) { r.Location = ""; r.Extra = "" },
			want:   []string{"location is required", "extra is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			require.Equal(t, tt.want, req.Validate())
		})
	}

	req := valid
	require.Empty(t, req.Validate())
	require.Equal(t, "WS", req.Name)
}

func TestEnrollRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  EnrollRequest
		want []string
	}{
		{name: "valid", req: EnrollRequest{Name: "Ana", Email: " ana@x.com ", EventID: 1}},
		{name: "non-ascii email", req: EnrollRequest{Name: "Éva", Email: "ÉVA@x.com", EventID: 1}},
		{name: "bad email", req: EnrollRequest{Name: "Ana", Email: "ana", EventID: 1}, want: []string{"email must be a valid email address"}},
		{name: "missing event", req: EnrollRequest{Name: "Ana", Email: "ana@x.com"}, want: []string{"event_id must be greater than 0"}},
		{name: "missing name", req: EnrollRequest{Email: "ana@x.com", EventID: 2}, want: []string{"name is required"}},
		{name: "blank email", req: EnrollRequest{Name: "Ana", Email: "  ", EventID: 2}, want: []string{"email is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.req.Validate())
		})
	}
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]string{"name is required", "email must be a valid email address"})
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "name is required; email must be a valid email address", err.Error())
}
