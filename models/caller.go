package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role names as they appear inside tokens.
const (
	RoleClient  = "client"
	RoleManager = "manager"
)

// Caller is the authenticated identity attached to every request. It is a
// closed set: only ClientCaller and ManagerCaller implement it, so an
// authorization guard that type-switches over both has covered every case.
type Caller interface {
	CallerID() primitive.ObjectID
	Role() string
	caller()
}

type ClientCaller struct {
	ID primitive.ObjectID
}

func (c ClientCaller) CallerID() primitive.ObjectID { return c.ID }
func (c ClientCaller) Role() string                 { return RoleClient }
func (c ClientCaller) caller()                      {}

type ManagerCaller struct {
	ID primitive.ObjectID
}

func (m ManagerCaller) CallerID() primitive.ObjectID { return m.ID }
func (m ManagerCaller) Role() string                 { return RoleManager }
func (m ManagerCaller) caller()                      {}

// CallerForRole builds a Caller from token claims. Unknown roles are
// rejected so a forged role string can never pass an authorization guard.
func CallerForRole(role string, id primitive.ObjectID) (Caller, bool) {
	switch role {
	case RoleClient:
		return ClientCaller{ID: id}, true
	case RoleManager:
		return ManagerCaller{ID: id}, true
	default:
		return nil, false
	}
}
