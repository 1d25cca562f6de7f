// Package access turns a stored bearer credential into typed claims and
// decides which views and API variants those claims may use.
//
// The credential's signature is never verified here. The collaborator
// validates every request it receives and stays the source of truth; the
// claims only drive what the client offers to do.
package access

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Reasons reported by DecodeError
const (
	ReasonSegments     = "segments"
	ReasonBase64       = "base64"
	ReasonJSON         = "json"
	ReasonMissingField = "missing_field"
)

// DecodeError is returned when a credential cannot be turned into Claims.
// Callers must discard the credential and ask the user to log in again.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid credential (%s)", e.Reason)
	}
	return fmt.Sprintf("invalid credential (%s): %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Claims is the identity and authorization payload carried by a credential
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims

	// Raw holds every field of the decoded payload, including the ones above
	Raw map[string]any `json:"-"`
}

// Role returns the label shown to the user for these claims
func (c Claims) Role() string {
	if c.IsAdmin {
		return "Admin"
	}
	return "Customer"
}

// ExpiredAt reports whether the credential carries an exp claim that has
// elapsed at now. Credentials without exp never expire client-side.
func (c Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Derive decodes the payload segment of a header.payload.signature
// credential. It performs no signature or expiry check.
func Derive(credential string) (Claims, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return Claims{}, &DecodeError{
			Reason: ReasonSegments,
			Err:    fmt.Errorf("expected 3 segments, got %d", len(parts)),
		}
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return Claims{}, &DecodeError{Reason: ReasonBase64, Err: err}
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Claims{}, &DecodeError{Reason: ReasonJSON, Err: err}
	}
	if raw == nil {
		return Claims{}, &DecodeError{Reason: ReasonJSON, Err: fmt.Errorf("payload is not an object")}
	}

	claims := Claims{Raw: raw, RegisteredClaims: registeredClaims(raw)}

	email, ok := raw["email"].(string)
	if !ok || email == "" {
		return Claims{}, &DecodeError{Reason: ReasonMissingField, Err: fmt.Errorf("email is required")}
	}
	claims.Email = email

	isAdmin, err := adminFlag(raw["is_admin"])
	if err != nil {
		return Claims{}, &DecodeError{Reason: ReasonMissingField, Err: err}
	}
	claims.IsAdmin = isAdmin

	return claims, nil
}

// adminFlag accepts a JSON boolean, or 0/1 as emitted by backends that
// store the flag in an integer column.
func adminFlag(v any) (bool, error) {
	switch flag := v.(type) {
	case bool:
		return flag, nil
	case float64:
		if flag == 0 || flag == 1 {
			return flag == 1, nil
		}
		return false, fmt.Errorf("is_admin must be a boolean, got %v", flag)
	case nil:
		return false, fmt.Errorf("is_admin is required")
	default:
		return false, fmt.Errorf("is_admin must be a boolean, got %T", v)
	}
}

// registeredClaims picks the registered fields out of raw. A field whose
// type does not match is left unset; it is still available in Raw.
func registeredClaims(raw map[string]any) jwt.RegisteredClaims {
	var rc jwt.RegisteredClaims
	rc.Issuer, _ = raw["iss"].(string)
	rc.Subject, _ = raw["sub"].(string)
	rc.ID, _ = raw["jti"].(string)
	rc.ExpiresAt = numericDate(raw["exp"])
	rc.NotBefore = numericDate(raw["nbf"])
	rc.IssuedAt = numericDate(raw["iat"])

	switch aud := raw["aud"].(type) {
	case string:
		rc.Audience = jwt.ClaimStrings{aud}
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				rc.Audience = append(rc.Audience, s)
			}
		}
	}
	return rc
}

func numericDate(v any) *jwt.NumericDate {
	secs, ok := v.(float64)
	if !ok {
		return nil
	}
	whole, frac := math.Modf(secs)
	return jwt.NewNumericDate(time.Unix(int64(whole), int64(frac*1e9)))
}

func decodeSegment(seg string) ([]byte, error) {
	decoded, err := segmentParser.DecodeSegment(seg)
	if err == nil {
		return decoded, nil
	}

	// atob() in the browser accepts the standard alphabet too
	if l := len(seg) % 4; l > 0 {
		seg += strings.Repeat("=", 4-l)
	}
	if decoded, stdErr := base64.StdEncoding.DecodeString(seg); stdErr == nil {
		return decoded, nil
	}

	return nil, err
}
