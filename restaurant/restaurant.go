package restaurant

import (
	"fmt"
	"time"

	"restaurant-till/models"
)

// Restaurant keeps opening hours, a menu and a running order cost.
// It is not safe for concurrent use; callers serialize access.
type Restaurant struct {
	name        string
	location    string
	openingTime TimeOfDay
	closingTime TimeOfDay
	menu        []models.Item
	orderCost   int64
	now         func() time.Time
}

type Option func(*Restaurant)

// WithClock replaces the wall clock used by IsOpen.
func WithClock(now func() time.Time) Option {
	return func(r *Restaurant) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMenu starts the restaurant with a copy of items.
func WithMenu(items []models.Item) Option {
	return func(r *Restaurant) {
		r.menu = append([]models.Item(nil), items...)
	}
}

func New(name, location string, opening, closing TimeOfDay, opts ...Option) (*Restaurant, error) {
	if opening >= closing {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidHours, opening, closing)
	}
	r := &Restaurant{
		name:        name,
		location:    location,
		openingTime: opening,
		closingTime: closing,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Restaurant) Name() string           { return r.name }
func (r *Restaurant) Location() string       { return r.location }
func (r *Restaurant) OpeningTime() TimeOfDay { return r.openingTime }
func (r *Restaurant) ClosingTime() TimeOfDay { return r.closingTime }

// CurrentTime is the time of day according to the restaurant's clock.
func (r *Restaurant) CurrentTime() TimeOfDay {
	return TimeOfDayOf(r.now())
}

// IsOpenAt reports whether t falls within opening hours, both bounds included.
func (r *Restaurant) IsOpenAt(t TimeOfDay) bool {
	return t >= r.openingTime && t <= r.closingTime
}

func (r *Restaurant) IsOpen() bool {
	return r.IsOpenAt(r.CurrentTime())
}

// Menu returns a snapshot of the menu in insertion order.
func (r *Restaurant) Menu() []models.Item {
	return append([]models.Item(nil), r.menu...)
}

func (r *Restaurant) AddToMenu(name string, price int64) {
	r.menu = append(r.menu, models.Item{Name: name, Price: price})
}

// RemoveFromMenu removes the first item named name and returns it.
func (r *Restaurant) RemoveFromMenu(name string) (models.Item, error) {
	i := r.indexOf(name)
	if i < 0 {
		return models.Item{}, &ItemNotFoundError{Name: name}
	}
	item := r.menu[i]
	r.menu = append(r.menu[:i], r.menu[i+1:]...)
	return item, nil
}

func (r *Restaurant) FindItem(name string) (models.Item, bool) {
	i := r.indexOf(name)
	if i < 0 {
		return models.Item{}, false
	}
	return r.menu[i], true
}

// AddItemsToOrder adds the price of each named menu item to the order cost.
// Names missing from the menu add nothing.
func (r *Restaurant) AddItemsToOrder(names []string) int64 {
	for _, name := range names {
		if item, ok := r.FindItem(name); ok {
			r.orderCost += item.Price
		}
	}
	return r.orderCost
}

// RemoveItemsFromOrder subtracts the price of each named menu item from the
// order cost. The cost is not clamped at zero.
func (r *Restaurant) RemoveItemsFromOrder(names []string) int64 {
	for _, name := range names {
		if item, ok := r.FindItem(name); ok {
			r.orderCost -= item.Price
		}
	}
	return r.orderCost
}

func (r *Restaurant) OrderCost() int64 {
	return r.orderCost
}

func (r *Restaurant) indexOf(name string) int {
	for i, item := range r.menu {
		if item.Name == name {
			return i
		}
	}
	return -1
}
