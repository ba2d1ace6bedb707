package models

// RoleEvent is an action that may change a user's role.
type RoleEvent string

// ListingCreated fires when a user successfully creates a Property or a
// NewProject.
const ListingCreated RoleEvent = "listing_created"

// roleTransitions is the complete transition table. Promotions are one-way:
// nothing ever demotes an owner back to seeker, and admin is never touched.
var roleTransitions = map[string]map[RoleEvent]string{
	RoleSeeker: {
		ListingCreated: RoleOwner,
	},
}

// NextRole returns the role a user should hold after the given event and
// whether the event changes anything. Callers apply the change in the same
// transaction as the action that triggered it.
func NextRole(current string, event RoleEvent) (string, bool) {
	if next, ok := roleTransitions[current][event]; ok {
		return next, true
	}
	return current, false
}
