package dto

// TokenRequest describes username/password payload.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPairResponse carries freshly issued access and refresh tokens.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// AccessResponse carries a renewed access token.
type AccessResponse struct {
	Access string `json:"access"`
}
