package services

import "github.com/arzan03/LandMarket/internal/models"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// CanAct reports whether the actor may act on a resource owned by ownerID.
func (a Actor) CanAct(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}
