package models

// Item is a named, priced entry on a restaurant menu.
type Item struct {
	Name  string
	Price int64
}
