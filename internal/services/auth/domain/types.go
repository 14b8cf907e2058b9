// Package domain holds DTOs for auth http and service contracts
package domain

// LoginInput is the body of POST /auth/login
type LoginInput struct {
	ClientID string `json:"client_id" validate:"required,min=1,max=128" example:"desktop-main"`
}

// TokenOutput is the login response payload
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"1200"`
}

// Claims is the decoded token payload
type Claims struct {
	Sub      string `json:"sub"`
	ClientID string `json:"client_id"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
	Type     string `json:"type"`
}

// SignedHeaders carries the four signature headers of a request
type SignedHeaders struct {
	ClientID  string
	Timestamp string
	Nonce     string
	Signature string
}
