package domain

// Principal captures the authenticated caller identity derived from the
// verified bearer token.
type Principal struct {
	ID       string
	Subject  string
	Issuer   string
	Username string
	Email    string
	Name     string
	Scopes   []string
}

// HasScope checks if the principal possesses a scope.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
