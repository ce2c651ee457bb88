package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound-server/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Save(ctx context.Context, item model.Item) (model.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Date.IsZero() {
		item.Date = time.Now()
	}
	item.Date = item.Date.UTC()

	query := `INSERT INTO items (` + itemColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query,
			item.ID, nullString(item.ItemName), nullString(item.Category), nullString(item.Description),
			nullString(item.Location), item.Date, nullString(string(item.Status)),
			nullString(item.ContactInfo), nullString(string(item.Type)), nullString(item.UserID),
		)
		return err
	})
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return model.Item{}, &model.ConflictError{Field: "id", Value: item.ID}
		}
		return model.Item{}, wrapError("save item", err)
	}

	return item, nil
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY date DESC`

	return r.list(ctx, "find items", query)
}

func (r *ItemRepository) FindByType(ctx context.Context, itemType string) ([]model.Item, error) {
	if itemType == "" {
		return []model.Item{}, nil
	}

	query := `SELECT ` + itemColumns + ` FROM items
			  WHERE UPPER(type) = UPPER($1)
			  ORDER BY date DESC`

	return r.list(ctx, "find items by type", query, itemType)
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	var item model.Item
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		var err error
		item, err = scanItem(conn.QueryRowContext(ctx, query, id))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, wrapError("find item", err)
	}

	return item, nil
}

func (r *ItemRepository) Search(ctx context.Context, filter model.SearchFilter) ([]model.Item, error) {
	query, args := newSearchQuery(filter).build()

	return r.list(ctx, "search items", query, args...)
}

func (r *ItemRepository) Delete(ctx context.Context, id string, userID string) (bool, error) {
	const query = `DELETE FROM items WHERE id = $1 AND user_id = $2`

	var affected int64
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, id, userID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, wrapError("delete item", err)
	}

	return affected > 0, nil
}

func (r *ItemRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Item, error) {
	items := []model.Item{}

	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, wrapError(op, err)
	}

	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (model.Item, error) {
	var (
		item                                          model.Item
		name, category, description, location, status sql.NullString
		contactInfo, itemType, userID                 sql.NullString
		date                                          sql.NullTime
	)

	err := row.Scan(
		&item.ID, &name, &category, &description, &location,
		&date, &status, &contactInfo, &itemType, &userID,
	)
	if err != nil {
		return model.Item{}, err
	}

	item.ItemName = name.String
	item.Category = category.String
	item.Description = description.String
	item.Location = location.String
	if date.Valid {
		item.Date = date.Time.UTC()
	}
	item.Status = model.ItemStatus(status.String)
	item.ContactInfo = contactInfo.String
	item.Type = model.ItemType(itemType.String)
	item.UserID = userID.String

	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
