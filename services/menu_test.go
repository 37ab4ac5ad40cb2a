package services

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-till/config"
	"restaurant-till/db"
	"restaurant-till/models"
	"restaurant-till/restaurant"
)

// Integration tests run against TEST_DATABASE_URL when it is set.
func TestMain(m *testing.M) {
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		pool, err := pgxpool.New(context.Background(), url)
		if err == nil {
			db.Pool = pool
		}
	}
	code := m.Run()
	db.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) context.Context {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping menu store integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping menu store integration test: no DB pool")
	}
	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS menu_items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price BIGINT NOT NULL CHECK (price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, `TRUNCATE menu_items RESTART IDENTITY`)
	require.NoError(t, err)
	return ctx
}

func TestValidateMenuItem(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		price   int64
		wantErr bool
	}{
		{"valid", "Sweet corn soup", 119, false},
		{"free item", "Water", 0, false},
		{"empty name", "", 10, true},
		{"comma in name", "Fish, chips", 150, true},
		{"negative price", "Refund", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMenuItem(tt.item, tt.price)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMenuItem(%q, %d) error = %v, wantErr %v", tt.item, tt.price, err, tt.wantErr)
			}
		})
	}
}

func TestMenuStore_Integration(t *testing.T) {
	ctx := requireDB(t)

	for _, it := range []models.Item{
		{Name: "Sweet corn soup", Price: 119},
		{Name: "Vegetable lasagne", Price: 269},
		{Name: "Sweet corn soup", Price: 129},
	} {
		_, err := AddMenuItem(ctx, it.Name, it.Price)
		require.NoError(t, err)
	}

	require.NoError(t, DeleteMenuItem(ctx, "Sweet corn soup"))
	items, err := ListMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Item{
		{Name: "Vegetable lasagne", Price: 269},
		{Name: "Sweet corn soup", Price: 129},
	}, items)

	err = DeleteMenuItem(ctx, "French fries")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = AddMenuItem(ctx, "", 10)
	assert.Error(t, err)
}

func TestLoadRestaurant_Integration(t *testing.T) {
	ctx := requireDB(t)
	_, err := AddMenuItem(ctx, "Sizzling brownie", 319)
	require.NoError(t, err)

	r, err := LoadRestaurant(ctx, config.RestaurantConfig{
		Name:        "Amelie's cafe",
		Location:    "Chennai",
		OpeningTime: restaurant.MustParseTimeOfDay("10:30:00"),
		ClosingTime: restaurant.MustParseTimeOfDay("22:00:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, []models.Item{{Name: "Sizzling brownie", Price: 319}}, r.Menu())
	assert.Equal(t, int64(319), r.AddItemsToOrder([]string{"Sizzling brownie"}))
}
