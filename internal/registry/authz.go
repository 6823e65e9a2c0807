package registry

import "evalgo.org/hostreg/models"

// CanEdit reports whether caller may modify host. Global admins may edit any
// host; everyone else must be listed in host.Admins. A nil caller may edit
// nothing. The host must have been loaded with its admins field.
func CanEdit(caller *models.Identity, host *models.Host) bool {
	if caller == nil || host == nil {
		return false
	}
	if caller.HasScope(models.ScopeAdmin) {
		return true
	}
	for _, admin := range host.Admins {
		if admin == caller.Sub {
			return true
		}
	}
	return false
}
