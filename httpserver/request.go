package httpserver

import (
	"contactbook/contact"
)

// CreateContactRequest carries the four optional text fields of a new
// contact. Missing fields are stored as empty; unknown fields (including an
// id) are ignored.
type CreateContactRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Job         string `json:"job"`
	Description string `json:"description"`
}

func (r CreateContactRequest) ToContact() contact.Contact {
	return contact.Contact{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Job:         r.Job,
		Description: r.Description,
	}
}

// UpdateContactRequest uses pointer fields so an absent field ("leave
// unchanged") stays distinguishable from an explicit empty string.
type UpdateContactRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Job         *string `json:"job"`
	Description *string `json:"description"`
}

func (r UpdateContactRequest) ToPatch() contact.Patch {
	return contact.Patch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Job:         r.Job,
		Description: r.Description,
	}
}
