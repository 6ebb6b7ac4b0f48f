package invitation

import "errors"

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrNotInvitee         = errors.New("invitation belongs to another customer")
	ErrInvitationResolved = errors.New("invitation has already been responded to")
)
