package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// CreateEventRequest carries the fields collected by the presentation layer.
type CreateEventRequest struct {
	Kind     string  `json:"kind" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Date     string  `json:"date" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Capacity int     `json:"capacity" validate:"gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Extra    string  `json:"extra" validate:"required"`
}

// Validate trims the text fields and returns one message per invalid field.
func (r *CreateEventRequest) Validate() []string {
	r.Kind = strings.TrimSpace(r.Kind)
	r.Name = strings.TrimSpace(r.Name)
	r.Date = strings.TrimSpace(r.Date)
	r.Location = strings.TrimSpace(r.Location)
	r.Extra = strings.TrimSpace(r.Extra)
	return validationMessages(validate.Struct(r))
}

// EnrollRequest registers one participant against an event.
type EnrollRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	EventID int64  `json:"event_id" validate:"gt=0"`
}

// Validate trims the text fields and returns one message per invalid field.
func (r *EnrollRequest) Validate() []string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return validationMessages(validate.Struct(r))
}

func validationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" "+tagMessage(fe))
	}
	return msgs
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	}
	return "is invalid"
}
