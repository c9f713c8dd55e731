package contact

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// CONTACT DTOs
// ========================================

// ContactRequest is one contact form submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" binding:"required"`
}

func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Subject,
			validation.Length(0, 200),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 5000),
		),
	)
}

type ContactResponse struct {
	OK bool `json:"ok"`
}
