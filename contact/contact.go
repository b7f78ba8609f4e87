package contact

// Contact is the managed entity. The four text fields are free-form and
// optional; an empty string means the field is not set.
type Contact struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Job         string `json:"job"`
	Description string `json:"description"`
}

// Patch is a partial update of a Contact. A nil field keeps the stored
// value, a set field replaces it wholesale. A patch carries no id, so an
// update can never move a record to a different key.
type Patch struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Job         *string `json:"job"`
	Description *string `json:"description"`
}

// Apply merges the patch onto c field by field.
func (p Patch) Apply(c *Contact) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Job != nil {
		c.Job = *p.Job
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
