package account

import (
	"context"
	"net/http"

	"commerce/storefront/internal/domain"
	v1 "commerce/storefront/internal/transport/web/v1"

	"golang.org/x/sync/errgroup"
)

type addressListData struct {
	Addresses []domain.Party    `json:"addresses"`
	Countries map[string]string `json:"countries,omitempty"`
}

// allAddresses folds the party lookup outcome into result and never returns nil addresses
func (h *Handler) allAddresses(ctx context.Context, userID domain.UserID, result *domain.JSONResult) ([]domain.Party, error) {
	resp, err := h.Accounts.GetParties(ctx, userID)
	if err != nil {
		return nil, err
	}
	result.SetErrors(resp.Success, resp.Errors)
	if !resp.Success || resp.Result == nil {
		return []domain.Party{}, nil
	}
	return resp.Result, nil
}

// AddressList returns the address book together with the countries an address may use
func (h *Handler) AddressList(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var (
		parties   domain.ManagerResponse[[]domain.Party]
		countries domain.ManagerResponse[map[string]string]
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		parties, err = h.Accounts.GetParties(ctx, session.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		countries, err = h.Orders.GetAvailableCountries(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := domain.NewJSONResult()
	data := addressListData{Addresses: []domain.Party{}, Countries: map[string]string{}}

	result.SetErrors(parties.Success, parties.Errors)
	if parties.Success && parties.Result != nil {
		data.Addresses = parties.Result
	}
	result.SetErrors(countries.Success, countries.Errors)
	if countries.Success && countries.Result != nil {
		data.Countries = countries.Result
	}

	result.Data = data
	return result, nil
}

func (h *Handler) AddressDelete(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var in domain.DeletePartyInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Accounts.RemoveParty(r.Context(), session.UserID, in.ExternalID)
	if err != nil {
		return nil, err
	}

	result := domain.ResultFrom(resp)
	addresses := []domain.Party{}
	if resp.Success {
		if addresses, err = h.allAddresses(r.Context(), session.UserID, result); err != nil {
			return nil, err
		}
	}
	result.Data = addressListData{Addresses: addresses}
	return result, nil
}

// AddressModify adds the party when it has no external id yet and updates it otherwise
func (h *Handler) AddressModify(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var in domain.PartyInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	var resp domain.ManagerResponse[domain.Party]
	if in.ExternalID == "" {
		resp, err = h.Accounts.AddParty(r.Context(), session.UserID, in.Party())
	} else {
		resp, err = h.Accounts.UpdateParty(r.Context(), session.UserID, in.Party())
	}
	if err != nil {
		return nil, err
	}

	result := domain.ResultFrom(resp)
	if !resp.Success {
		return result, nil
	}

	addresses, err := h.allAddresses(r.Context(), session.UserID, result)
	if err != nil {
		return nil, err
	}
	result.Data = addressListData{Addresses: addresses}
	return result, nil
}
