package constants

import "fmt"

// Role worker pada satu company
const (
	RoleWorker = "worker"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin atau owner yang boleh mengakses fitur %s."
	ErrOnlyOwnersCanAccess = "❌ Hanya owner yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}
