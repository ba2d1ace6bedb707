package validation

import (
	"realtychance/internal/models"
)

// UserRegistration validates a registration request
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Required("phone", input.Phone)
	v.Required("email", input.Email)
	v.Required("full_name", input.FullName)
	v.Required("password", input.Password)

	if input.Phone != "" {
		v.Phone("phone", input.Phone)
	}
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if input.Password != "" {
		v.Password("password", input.Password)
	}
	if input.Password != input.Password2 {
		v.AddError("password", "password fields didn't match")
	}
}

// Property validates a property create/update request
func (v *Validator) Property(input *models.PropertyInput) {
	v.Required("title", input.Title)
	v.MaxLength("title", input.Title, 255)
	v.Required("description", input.Description)
	v.Positive("price", input.Price)
	v.Required("property_type", input.PropertyType)
	v.Check(models.ValidPropertyType(input.PropertyType),
		"property_type", "must be one of sale, rent, lease, pg")
	v.Required("city", input.City)
	v.Required("state", input.State)
	v.Required("address", input.Address)
	for _, img := range input.Images {
		v.Required("images.url", img.URL)
	}
}

// Project validates a new-project create/update request
func (v *Validator) Project(input *models.ProjectInput) {
	v.Required("name", input.Name)
	v.MaxLength("name", input.Name, 255)
	v.Required("builder_name", input.BuilderName)
	v.Required("description", input.Description)
	v.Required("city", input.City)
	v.Required("state", input.State)
	v.Required("launch_date", input.LaunchDate)
	v.Required("possession_date", input.PossessionDate)
	if input.LaunchDate != "" {
		v.Date("launch_date", input.LaunchDate)
	}
	if input.PossessionDate != "" {
		v.Date("possession_date", input.PossessionDate)
	}
	v.Required("project_type", input.ProjectType)
	v.Check(models.ValidProjectType(input.ProjectType),
		"project_type", "must be one of residential, commercial, mixed")
}

// Inquiry validates an inquiry create request
func (v *Validator) Inquiry(input *models.InquiryInput) {
	v.Required("property_id", input.PropertyID)
	v.Required("message", input.Message)
}
