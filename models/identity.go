package models

// Capability names carried in the pwa scope of a token.
const (
	ScopeAdmin = "admin"
	ScopeUser  = "user"
)

// Identity is the decoded caller of a request.
type Identity struct {
	// Sub is the subject id of the caller
	Sub string `json:"sub"`

	// Scopes holds the capabilities granted to the caller
	Scopes []string `json:"scopes"`
}

// HasScope reports whether the identity carries the capability.
func (i *Identity) HasScope(scope string) bool {
	if i == nil {
		return false
	}
	for _, s := range i.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
