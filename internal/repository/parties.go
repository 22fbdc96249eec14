package repository

import (
	"context"
	"fmt"

	"commerce/storefront/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// PartyRepository keeps the customer address book
type PartyRepository interface {
	ListParties(ctx context.Context, userID domain.UserID) ([]domain.Party, error)
	AddParty(ctx context.Context, userID domain.UserID, party domain.Party) error
	UpdateParty(ctx context.Context, userID domain.UserID, party domain.Party) error
	DeleteParty(ctx context.Context, userID domain.UserID, externalID string) error
}

type partyRepository struct {
	db Querier
}

func NewPartyRepository(db Querier) PartyRepository {
	return &partyRepository{
		db: db,
	}
}

func (r *partyRepository) ListParties(ctx context.Context, userID domain.UserID) ([]domain.Party, error) {
	query, args, err := qb().Select(
		"external_id", "party_id", "name", "address1", "city", "state", "country", "zip_postal_code", "is_primary",
	).
		From("parties").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("is_primary DESC", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build party query: %w", err)
	}
	logSQL("ListParties", query, args)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties of %s: %w", userID, err)
	}
	defer rows.Close()

	parties := make([]domain.Party, 0)
	for rows.Next() {
		var p domain.Party
		if err := rows.Scan(&p.ExternalID, &p.PartyID, &p.Name, &p.Address1, &p.City, &p.State, &p.Country, &p.ZipPostalCode, &p.IsPrimary); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parties of %s: %w", userID, err)
	}

	return parties, nil
}

func (r *partyRepository) AddParty(ctx context.Context, userID domain.UserID, party domain.Party) error {
	query, args, err := qb().Insert("parties").
		Columns("external_id", "user_id", "party_id", "name", "address1", "city", "state", "country", "zip_postal_code", "is_primary").
		Values(party.ExternalID, userID, party.PartyID, party.Name, party.Address1, party.City, party.State, party.Country, party.ZipPostalCode, party.IsPrimary).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build party insert: %w", err)
	}
	logSQL("AddParty", query, args)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add party %s: %w", party.ExternalID, conflict(err))
	}
	return nil
}

func (r *partyRepository) UpdateParty(ctx context.Context, userID domain.UserID, party domain.Party) error {
	query, args, err := qb().Update("parties").
		Set("party_id", party.PartyID).
		Set("name", party.Name).
		Set("address1", party.Address1).
		Set("city", party.City).
		Set("state", party.State).
		Set("country", party.Country).
		Set("zip_postal_code", party.ZipPostalCode).
		Set("is_primary", party.IsPrimary).
		Where(sq.Eq{"user_id": userID, "external_id": party.ExternalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build party update: %w", err)
	}
	logSQL("UpdateParty", query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update party %s: %w", party.ExternalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("party %s: %w", party.ExternalID, domain.ErrNotFound)
	}
	return nil
}

func (r *partyRepository) DeleteParty(ctx context.Context, userID domain.UserID, externalID string) error {
	query, args, err := qb().Delete("parties").
		Where(sq.Eq{"user_id": userID, "external_id": externalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build party delete: %w", err)
	}
	logSQL("DeleteParty", query, args)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete party %s: %w", externalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("party %s: %w", externalID, domain.ErrNotFound)
	}
	return nil
}
