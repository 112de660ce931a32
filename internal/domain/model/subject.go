package model

// Subject is an authenticated caller resolved by the identity layer.
type Subject struct {
	ID      int64
	IsStaff bool
}

// Anonymous reports whether the subject carries no identity.
func (s Subject) Anonymous() bool {
	return s.ID == 0
}

// TokenPair holds an access token and the refresh token used to renew it.
type TokenPair struct {
	Access  string
	Refresh string
}
