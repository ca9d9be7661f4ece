package domain

import "time"

type Customer struct {
	Email     string
	Name      string
	Hash      string
	CreatedAt time.Time
}

type CustomerSignup struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type ProfileUpdate struct {
	Name string `json:"name" validate:"max=100"`
}

// Profile is what a customer sees at /me. Name is omitted when blank.
type Profile struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func (c Customer) Profile() Profile {
	p := Profile{Email: c.Email}
	if c.Name != "" {
		n := c.Name
		p.Name = &n
	}
	return p
}
