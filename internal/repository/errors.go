package repository

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrSlotTaken  = errors.New("table slot already taken")
	ErrForeignKey = errors.New("referenced row does not exist")
)
