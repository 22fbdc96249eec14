package account

import (
	"net/http"
	"time"

	"commerce/storefront/internal/domain"
	v1 "commerce/storefront/internal/transport/web/v1"
)

type loginData struct {
	Token     domain.Token `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      domain.User  `json:"user"`
}

func toLoginData(res domain.LoginResult) any {
	return loginData{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
		User:      res.User,
	}
}

// Register creates the account and logs the new user in
func (h *Handler) Register(r *http.Request) (*domain.JSONResult, error) {
	var in domain.RegisterUserInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Accounts.RegisterUser(r.Context(), in)
	if err != nil {
		return nil, err
	}
	result := domain.ResultFrom(resp)
	if !resp.Success {
		return result, nil
	}

	login, err := h.Accounts.Login(r.Context(), resp.Result.UserName, in.Password)
	if err != nil {
		return nil, err
	}
	result.SetErrors(login.Success, login.Errors)
	if login.Success {
		result.Data = toLoginData(login.Result)
	}
	return result, nil
}

func (h *Handler) Login(r *http.Request) (*domain.JSONResult, error) {
	var in domain.LoginInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Accounts.Login(r.Context(), in.UserName, in.Password)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, toLoginData), nil
}

func (h *Handler) LogOff(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}
	if err := h.Accounts.Logout(r.Context(), session); err != nil {
		return nil, err
	}
	return domain.NewJSONResult(), nil
}

// CurrentUser answers with an empty user for anonymous visitors
func (h *Handler) CurrentUser(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		result := domain.NewJSONResult()
		result.Data = domain.User{}
		return result, nil
	}

	resp, err := h.Accounts.GetUser(r.Context(), session.UserID)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, func(u domain.User) any { return u }), nil
}
