package repository

import (
	"context"
	"fmt"

	"commerce/storefront/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// ItemRepository reads the storefront content tree
type ItemRepository interface {
	GetItem(ctx context.Context, id domain.ItemID) (*domain.Item, error)
	GetDescendant(ctx context.Context, rootPath, relativePath string) (*domain.Item, error)
	FindCatalogItem(ctx context.Context, kinds []domain.ItemKind, name, catalogName string) (*domain.Item, error)
	SaveItem(ctx context.Context, item *domain.Item) error
}

type itemRepository struct {
	db Querier
}

func NewItemRepository(db Querier) ItemRepository {
	return &itemRepository{
		db: db,
	}
}

var itemColumns = []string{"id", "name", "display_name", "path", "kind", "catalog_name"}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		item domain.Item
		kind string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.DisplayName, &item.Path, &kind, &item.CatalogName); err != nil {
		return nil, err
	}
	item.Kind = domain.ParseItemKind(kind)
	return &item, nil
}

func (r *itemRepository) GetItem(ctx context.Context, id domain.ItemID) (*domain.Item, error) {
	query, args, err := qb().Select(itemColumns...).
		From("items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build item query: %w", err)
	}
	logSQL("GetItem", query, args)

	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, notFound(err))
	}
	return item, nil
}

func (r *itemRepository) GetDescendant(ctx context.Context, rootPath, relativePath string) (*domain.Item, error) {
	query, args, err := descendantQuery(rootPath, relativePath).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build descendant query: %w", err)
	}
	logSQL("GetDescendant", query, args)

	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s under %s: %w", relativePath, rootPath, notFound(err))
	}
	return item, nil
}

func descendantQuery(rootPath, relativePath string) sq.SelectBuilder {
	return qb().Select(itemColumns...).
		From("items").
		Where("lower(path) = lower(?)", domain.JoinPath(rootPath, relativePath))
}

func (r *itemRepository) FindCatalogItem(
	ctx context.Context,
	kinds []domain.ItemKind,
	name,
	catalogName string,
) (*domain.Item, error) {
	query, args, err := catalogItemQuery(kinds, name, catalogName).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog item query: %w", err)
	}
	logSQL("FindCatalogItem", query, args)

	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to find %s in catalog %s: %w", name, catalogName, notFound(err))
	}
	return item, nil
}

func catalogItemQuery(kinds []domain.ItemKind, name, catalogName string) sq.SelectBuilder {
	kindValues := make([]string, 0, len(kinds))
	for _, k := range kinds {
		kindValues = append(kindValues, k.String())
	}

	return qb().Select(itemColumns...).
		From("items").
		Where(sq.Eq{"catalog_name": catalogName, "kind": kindValues}).
		Where("lower(name) = lower(?)", name).
		OrderBy("path").
		Limit(1)
}

func (r *itemRepository) SaveItem(ctx context.Context, item *domain.Item) error {
	query, args, err := qb().Insert("items").
		Columns(itemColumns...).
		Values(item.ID, item.Name, item.DisplayName, item.Path, item.Kind.String(), item.CatalogName).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			display_name = EXCLUDED.display_name,
			path = EXCLUDED.path,
			kind = EXCLUDED.kind,
			catalog_name = EXCLUDED.catalog_name`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build item upsert: %w", err)
	}
	logSQL("SaveItem", query, args)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, conflict(err))
	}
	return nil
}
