package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/services/auth/domain"
)

// CanonicalMessage builds the string both sides sign for a request.
// The body hash keeps the message fixed-width regardless of payload size
func CanonicalMessage(method, path string, body []byte, timestamp, nonce string) string {
	sum := sha256.Sum256(body)
	return method + "|" + path + "|" + hex.EncodeToString(sum[:]) + "|" + timestamp + "|" + nonce
}

// Sign computes the request signature for a canonical message
func Sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the four signed headers against the request.
// Order matters: presence, client identity, freshness, replay, then the MAC
// itself, so an attacker learns as little as possible from the failure mode
func (s *Svc) VerifySignature(method, path string, body []byte, h domain.SignedHeaders) (string, error) {
	if h.ClientID == "" || h.Timestamp == "" || h.Nonce == "" || h.Signature == "" {
		return "", perr.Unauthorizedf("missing signature headers")
	}

	secret, ok := s.cfg.Credentials[h.ClientID]
	if !ok {
		s.log.Warn().Str("client_id", truncID(h.ClientID)).Msg("signature from unknown client")
		return "", perr.Forbiddenf("unknown client")
	}

	ts, err := strconv.ParseInt(h.Timestamp, 10, 64)
	if err != nil {
		return "", perr.Unauthorizedf("malformed timestamp")
	}
	now := s.now().UTC().Unix()
	skew := now - ts
	if skew < 0 {
		skew = -skew
	}
	if skew > int64(s.cfg.SkewWindow.Seconds()) {
		return "", perr.Unauthorizedf("request timestamp outside window")
	}

	if !s.nonces.CheckAndInsert(h.ClientID+":"+h.Nonce, now) {
		s.log.Warn().Str("client_id", truncID(h.ClientID)).Msg("nonce replay rejected")
		return "", perr.Unauthorizedf("nonce already used")
	}

	want := Sign(secret, CanonicalMessage(method, path, body, h.Timestamp, h.Nonce))
	if !hmac.Equal([]byte(want), []byte(h.Signature)) {
		return "", perr.Unauthorizedf("signature mismatch")
	}
	return h.ClientID, nil
}
