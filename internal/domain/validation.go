package domain

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+()\-\s]{5,20}$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

const MinPasswordLength = 6

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPassword requires the minimum length plus mixed case and a digit
func ValidPassword(s string) bool {
	if len(s) < MinPasswordLength {
		return false
	}
	return upperRe.MatchString(s) && lowerRe.MatchString(s) && digitRe.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (in RegisterUserInput) Validate() error {
	var msgs []string
	if !ValidEmail(in.UserName) {
		msgs = append(msgs, "A valid email address is required.")
	}
	if blank(in.FirstName) {
		msgs = append(msgs, "First name is required.")
	}
	if blank(in.LastName) {
		msgs = append(msgs, "Last name is required.")
	}
	if !ValidPassword(in.Password) {
		msgs = append(msgs, "The password must be at least 6 characters and contain upper case, lower case and digits.")
	}
	if in.Password != in.ConfirmPassword {
		msgs = append(msgs, "The password and confirmation password do not match.")
	}
	return NewValidationError(msgs)
}

func (in LoginInput) Validate() error {
	var msgs []string
	if blank(in.UserName) {
		msgs = append(msgs, "User name is required.")
	}
	if in.Password == "" {
		msgs = append(msgs, "Password is required.")
	}
	return NewValidationError(msgs)
}

func (in ChangePasswordInput) Validate() error {
	var msgs []string
	if in.CurrentPassword == "" {
		msgs = append(msgs, "Current password is required.")
	}
	if !ValidPassword(in.NewPassword) {
		msgs = append(msgs, "The new password must be at least 6 characters and contain upper case, lower case and digits.")
	}
	if in.NewPassword != in.ConfirmPassword {
		msgs = append(msgs, "The new password and confirmation password do not match.")
	}
	return NewValidationError(msgs)
}

func (in ProfileInput) Validate() error {
	var msgs []string
	if blank(in.FirstName) {
		msgs = append(msgs, "First name is required.")
	}
	if blank(in.LastName) {
		msgs = append(msgs, "Last name is required.")
	}
	if !ValidEmail(in.Email) {
		msgs = append(msgs, "A valid email address is required.")
	}
	if in.EmailRepeat != "" && !strings.EqualFold(in.Email, in.EmailRepeat) {
		msgs = append(msgs, "The email and confirmation email do not match.")
	}
	if in.TelephoneNumber != "" && !phoneRe.MatchString(in.TelephoneNumber) {
		msgs = append(msgs, "The telephone number is not valid.")
	}
	if in.Password != "" || in.PasswordRepeat != "" {
		if !ValidPassword(in.Password) {
			msgs = append(msgs, "The password must be at least 6 characters and contain upper case, lower case and digits.")
		}
		if in.Password != in.PasswordRepeat {
			msgs = append(msgs, "The password and confirmation password do not match.")
		}
	}
	return NewValidationError(msgs)
}

func (in ForgotPasswordInput) Validate() error {
	if !ValidEmail(in.Email) {
		return NewValidationError([]string{"A valid email address is required."})
	}
	return nil
}

func (in DeletePartyInput) Validate() error {
	if blank(in.ExternalID) {
		return NewValidationError([]string{"Address id is required."})
	}
	return nil
}

func (in PartyInput) Validate() error {
	var msgs []string
	if blank(in.Name) {
		msgs = append(msgs, "Name is required.")
	}
	if blank(in.Address1) {
		msgs = append(msgs, "Address is required.")
	}
	if blank(in.City) {
		msgs = append(msgs, "City is required.")
	}
	if blank(in.Country) {
		msgs = append(msgs, "Country is required.")
	}
	if blank(in.ZipPostalCode) {
		msgs = append(msgs, "Zip/postal code is required.")
	}
	return NewValidationError(msgs)
}

func (in ReorderInput) Validate() error {
	if blank(in.OrderID) {
		return NewValidationError([]string{"Order id is required."})
	}
	return nil
}

func (in CancelOrderInput) Validate() error {
	if blank(in.OrderID) {
		return NewValidationError([]string{"Order id is required."})
	}
	return nil
}

func (in ItemInput) Validate() error {
	var msgs []string
	if blank(in.Name) {
		msgs = append(msgs, "Item name is required.")
	}
	if len(SplitPath(in.Path)) == 0 {
		msgs = append(msgs, "Item path is required.")
	}
	if ParseItemKind(in.Kind).IsCatalogItem() && blank(in.CatalogName) {
		msgs = append(msgs, "Catalog name is required for catalog items.")
	}
	return NewValidationError(msgs)
}
