package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/services/auth/domain"
)

// IssueToken signs a short-lived access token for clientID
// extra claims are merged in without overriding the reserved set
func (s *Svc) IssueToken(clientID string, extra map[string]any) (string, error) {
	iat := s.now().UTC().Unix()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = clientID
	claims["client_id"] = clientID
	claims["iat"] = iat
	claims["exp"] = iat + int64(s.cfg.TokenTTL.Seconds())
	claims["type"] = "access"

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "token signing failed")
	}
	return tok, nil
}

// VerifyToken decodes and validates a bearer token string
// failures are typed: expired tokens and everything else map to Unauthorized
func (s *Svc) VerifyToken(token string) (domain.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.cfg.Leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, perr.Unauthorizedf("token expired")
		}
		return domain.Claims{}, perr.Unauthorizedf("token invalid")
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return domain.Claims{}, perr.Unauthorizedf("token invalid")
	}

	out := domain.Claims{}
	if v, ok := mc["sub"].(string); ok {
		out.Sub = v
	}
	if v, ok := mc["client_id"].(string); ok {
		out.ClientID = v
	}
	if v, ok := mc["iat"].(float64); ok {
		out.IssuedAt = int64(v)
	}
	if v, ok := mc["exp"].(float64); ok {
		out.Expires = int64(v)
	}
	if v, ok := mc["type"].(string); ok {
		out.Type = v
	}
	if out.ClientID == "" || out.Type != "access" {
		return domain.Claims{}, perr.Unauthorizedf("token invalid")
	}
	if _, known := s.cfg.Credentials[out.ClientID]; !known {
		return domain.Claims{}, perr.Unauthorizedf("token invalid")
	}
	return out, nil
}
