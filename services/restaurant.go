package services

import (
	"context"
	"fmt"

	"restaurant-till/config"
	"restaurant-till/restaurant"
)

// LoadRestaurant builds the configured restaurant with the stored menu.
func LoadRestaurant(ctx context.Context, cfg config.RestaurantConfig, opts ...restaurant.Option) (*restaurant.Restaurant, error) {
	items, err := ListMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	opts = append([]restaurant.Option{restaurant.WithMenu(items)}, opts...)
	return restaurant.New(cfg.Name, cfg.Location, cfg.OpeningTime, cfg.ClosingTime, opts...)
}
