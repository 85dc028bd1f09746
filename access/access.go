// Package access decides which actor may perform which action on which entity.
package access

import (
	apperrors "script9/errors"
)

// Role is the platform role carried by the session token.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleGuest, RoleHost, RoleAdmin:
		return r, true
	}
	return "", false
}

// Actor is the authenticated caller.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Action names a guarded operation.
type Action string

const (
	BookingRead      Action = "booking:read"
	BookingConfirm   Action = "booking:confirm"
	BookingComplete  Action = "booking:complete"
	BookingCancel    Action = "booking:cancel"
	BookingListAll   Action = "booking:list-all"
	ConversationJoin Action = "conversation:participate"
	ReviewEdit       Action = "review:edit"
	ReviewRespond    Action = "review:respond"
	ReviewDelete     Action = "review:delete"
	PropertyCreate   Action = "property:create"
	PropertyManage   Action = "property:manage"
	StatsGlobal      Action = "stats:global"
)

// Resource carries the ownership facts of the entity being acted on.
type Resource struct {
	GuestID  string
	HostID   string
	AuthorID string
}

type rule struct {
	// admin lets administrators through regardless of ownership.
	admin bool
	allow func(Actor, Resource) bool
}

func isGuest(a Actor, r Resource) bool { return a.UserID != "" && a.UserID == r.GuestID }
func isHost(a Actor, r Resource) bool { return a.UserID != "" && a.UserID == r.HostID }
func isAuthor(a Actor, r Resource) bool { return a.UserID != "" && a.UserID == r.AuthorID }
func isParty(a Actor, r Resource) bool { return isGuest(a, r) || isHost(a, r) }
func nobody(Actor, Resource) bool { return false }

var policies = map[Action]rule{
	BookingRead:      {admin: true, allow: isParty},
	BookingConfirm:   {admin: true, allow: isHost},
	BookingComplete:  {admin: true, allow: isHost},
	BookingCancel:    {admin: true, allow: isParty},
	BookingListAll:   {admin: true, allow: nobody},
	ConversationJoin: {admin: false, allow: isParty},
	ReviewEdit:       {admin: false, allow: isAuthor},
	ReviewRespond:    {admin: false, allow: isHost},
	ReviewDelete:     {admin: true, allow: nobody},
	PropertyCreate: {admin: true, allow: func(a Actor, _ Resource) bool {
		return a.Role == RoleHost
	}},
	PropertyManage: {admin: true, allow: func(a Actor, r Resource) bool {
		return a.Role == RoleHost && isHost(a, r)
	}},
	StatsGlobal: {admin: true, allow: nobody},
}

// Can reports whether actor may perform action on res. Unknown actions are denied.
func Can(actor Actor, action Action, res Resource) bool {
	p, ok := policies[action]
	if !ok {
		return false
	}
	if p.admin && actor.IsAdmin() {
		return true
	}
	return p.allow(actor, res)
}

// Require is Can returning a ForbiddenError on denial.
func Require(actor Actor, action Action, res Resource) error {
	if Can(actor, action, res) {
		return nil
	}
	return apperrors.Forbidden("not allowed to " + string(action))
}
