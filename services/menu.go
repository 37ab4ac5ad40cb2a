package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-till/db"
	"restaurant-till/models"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// ListMenu returns stored menu items in the order they were added.
func ListMenu(ctx context.Context) ([]models.Item, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT name, price FROM menu_items
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func AddMenuItem(ctx context.Context, name string, price int64) (int64, error) {
	if err := ValidateMenuItem(name, price); err != nil {
		return 0, err
	}

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, price) VALUES ($1, $2)
		RETURNING id`,
		name, price,
	).Scan(&id)
	return id, err
}

// DeleteMenuItem deletes the oldest row with the given name, mirroring
// Restaurant.RemoveFromMenu which drops the first match.
func DeleteMenuItem(ctx context.Context, name string) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM menu_items
		WHERE id = (SELECT id FROM menu_items WHERE name = $1 ORDER BY id LIMIT 1)`,
		name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrMenuItemNotFound, name)
	}
	return nil
}

// ValidateMenuItem checks what the store accepts: a non-empty name without
// commas (the bot separates ordered items with them) and a price >= 0.
func ValidateMenuItem(name string, price int64) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.Contains(name, ",") {
		return fmt.Errorf("name must not contain commas")
	}
	if price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	return nil
}
