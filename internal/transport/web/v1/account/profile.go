package account

import (
	"net/http"

	"commerce/storefront/internal/domain"
	v1 "commerce/storefront/internal/transport/web/v1"
)

func (h *Handler) ChangePassword(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var in domain.ChangePasswordInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Accounts.ChangePassword(r.Context(), session.UserID, in)
	if err != nil {
		return nil, err
	}
	return domain.ResultFrom(resp), nil
}

// UpdateProfile saves the profile and, when both password fields are filled in, the new password
func (h *Handler) UpdateProfile(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var in domain.ProfileInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Accounts.UpdateUser(r.Context(), session.UserID, in)
	if err != nil {
		return nil, err
	}
	result := v1.Result(resp, func(u domain.User) any { return u })
	if !resp.Success || in.Password == "" || in.PasswordRepeat == "" {
		return result, nil
	}

	pwd, err := h.Accounts.SetPassword(r.Context(), session.UserID, in.Password)
	if err != nil {
		return nil, err
	}
	result.SetErrors(pwd.Success, pwd.Errors)
	return result, nil
}

type forgotPasswordData struct {
	Email string `json:"email"`
}

func (h *Handler) ForgotPassword(r *http.Request) (*domain.JSONResult, error) {
	var in domain.ForgotPasswordInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Accounts.ResetUserPassword(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, func(email string) any { return forgotPasswordData{Email: email} }), nil
}
