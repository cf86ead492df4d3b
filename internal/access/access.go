// Package access decides who may view which user profile.
package access

import "github.com/users-generator-api/internal/models"

// CanView reports whether requester may see target's profile. Admins see
// everyone; other users see only themselves.
func CanView(requester, target *models.User) bool {
	if requester == nil || target == nil {
		return false
	}
	if requester.IsAdmin() {
		return true
	}
	return requester.ID != "" && requester.ID == target.ID
}
