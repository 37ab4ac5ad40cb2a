package restaurant

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidHours = errors.New("opening time must be before closing time")
)

// ItemNotFoundError reports a menu removal for a name that is not on the menu.
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrItemNotFound, e.Name)
}

func (e *ItemNotFoundError) Unwrap() error {
	return ErrItemNotFound
}
