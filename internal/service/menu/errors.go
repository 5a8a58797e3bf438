package menu

import "errors"

var (
	// ErrNotFound is returned when the category or menu item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken is returned when a category with the same name exists.
	ErrNameTaken = errors.New("name already taken")

	// ErrCategoryInUse is returned when deleting a category that still has
	// menu items attached.
	ErrCategoryInUse = errors.New("category still has menu items")

	// ErrMenuInUse is returned when deleting a menu item referenced by
	// historical order lines.
	ErrMenuInUse = errors.New("menu item referenced by orders")
)
