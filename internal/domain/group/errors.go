package group

import "errors"

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrInvalidName        = errors.New("group name must be 3-30 characters")
	ErrAlreadyMember      = errors.New("already a member of this group")
	ErrInvalidTransition  = errors.New("group status transition not allowed")
	ErrStatusConflict     = errors.New("group status changed concurrently")
)
