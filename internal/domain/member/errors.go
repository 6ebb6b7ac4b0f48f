package member

import "errors"

var (
	ErrMemberNotFound        = errors.New("member not found")
	ErrGroupNotFound         = errors.New("group not found")
	ErrInvalidTransition     = errors.New("member status transition not allowed")
	ErrAlreadyInActiveGroup  = errors.New("customer already in an active botram group")
	ErrNotGroupAdmin         = errors.New("only admin of botram group may perform this action")
	ErrGroupNotOrdering      = errors.New("group is no longer ordering")
	ErrGroupAlreadyFinalized = errors.New("group order has already been created")
	ErrCannotExpelAdmin      = errors.New("cannot expel group admin")
	ErrStatusConflict        = errors.New("member status changed concurrently")
)
