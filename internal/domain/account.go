package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserID = uuid.UUID

// User is a storefront customer account
type User struct {
	ID         UserID    `json:"id"`
	ExternalID string    `json:"external_id"`
	UserName   string    `json:"user_name"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	PassHash   []byte    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// FullName joins first and last name
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Party is an address book entry of a customer
type Party struct {
	ExternalID    string `json:"external_id"`
	PartyID       string `json:"party_id,omitempty"`
	Name          string `json:"name"`
	Address1      string `json:"address1"`
	City          string `json:"city"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country"`
	ZipPostalCode string `json:"zip_postal_code"`
	IsPrimary     bool   `json:"is_primary"`
}

// RegisterUserInput is the registration form
type RegisterUserInput struct {
	UserName        string `json:"user_name"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginInput struct {
	UserName   string `json:"user_name"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ProfileInput updates the profile and, when both password fields are set, the password too
type ProfileInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	EmailRepeat     string `json:"email_repeat"`
	TelephoneNumber string `json:"telephone_number"`
	Password        string `json:"password"`
	PasswordRepeat  string `json:"password_repeat"`
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

type DeletePartyInput struct {
	ExternalID string `json:"external_id"`
}

type PartyInput struct {
	ExternalID    string `json:"external_id"`
	PartyID       string `json:"party_id"`
	Name          string `json:"name"`
	Address1      string `json:"address1"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	ZipPostalCode string `json:"zip_postal_code"`
	IsPrimary     bool   `json:"is_primary"`
}

// Party converts the input into a party
func (in PartyInput) Party() Party {
	return Party{
		ExternalID:    in.ExternalID,
		PartyID:       in.PartyID,
		Name:          in.Name,
		Address1:      in.Address1,
		City:          in.City,
		State:         in.State,
		Country:       in.Country,
		ZipPostalCode: in.ZipPostalCode,
		IsPrimary:     in.IsPrimary,
	}
}
