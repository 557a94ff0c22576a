package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func rawToken(payload string) string {
	return "hdr." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestEvaluate(t *testing.T) {
	now := time.Unix(1_700_000_000, 500_000_000)

	tests := []struct {
		name    string
		raw     string
		outcome Outcome
		subject string
	}{
		{name: "empty", raw: "", outcome: OutcomeMissing},
		{name: "exp zero", raw: "abc.eyJleHAiOjB9.sig", outcome: OutcomeExpired},
		{name: "two segments", raw: "abc.eyJleHAiOjB9", outcome: OutcomeMalformed},
		{name: "four segments", raw: "a.b.c.d", outcome: OutcomeMalformed},
		{name: "not base64", raw: "abc.!!!.sig", outcome: OutcomeMalformed},
		{name: "payload not json", raw: rawToken("hello"), outcome: OutcomeMalformed},
		{name: "payload array", raw: rawToken(`[1,2]`), outcome: OutcomeMalformed},
		{name: "payload null", raw: rawToken(`null`), outcome: OutcomeMalformed},
		{name: "missing exp", raw: rawToken(`{"sub":"u1"}`), outcome: OutcomeMalformed},
		{name: "string exp", raw: rawToken(`{"exp":"1900000000"}`), outcome: OutcomeMalformed},
		{name: "exp equals now", raw: rawToken(`{"exp":1700000000.5}`), outcome: OutcomeExpired},
		{name: "fraction before now", raw: rawToken(`{"exp":1700000000.4}`), outcome: OutcomeExpired},
		{name: "fraction after now", raw: rawToken(`{"exp":1700000000.6}`), outcome: OutcomeAuthenticated},
		{name: "sub wins", raw: rawToken(`{"exp":1800000000,"sub":"s","id":"i"}`), outcome: OutcomeAuthenticated, subject: "s"},
		{name: "id fallback", raw: rawToken(`{"exp":1800000000,"id":"665f1c"}`), outcome: OutcomeAuthenticated, subject: "665f1c"},
		{name: "numeric userId", raw: rawToken(`{"exp":1800000000,"userId":42}`), outcome: OutcomeAuthenticated, subject: "42"},
		{name: "no subject", raw: rawToken(`{"exp":1800000000}`), outcome: OutcomeAuthenticated},
		{name: "trailing data", raw: rawToken(`{"exp":9999999999} not json`), outcome: OutcomeMalformed},
		{name: "two objects", raw: rawToken(`{"exp":9999999999}{"exp":1}`), outcome: OutcomeMalformed},
		{name: "trailing whitespace", raw: rawToken("{\"exp\":1800000000}\n "), outcome: OutcomeAuthenticated},
		{name: "standard alphabet", raw: "h." + base64.RawStdEncoding.EncodeToString([]byte(`{"exp":9999999999,"sub":"??>"}`)) + ".s", outcome: OutcomeAuthenticated, subject: "??>"},
		{name: "padded payload", raw: "h." + base64.URLEncoding.EncodeToString([]byte(`{"exp":1800000000}`)) + ".s", outcome: OutcomeAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.raw, now)
			assert.Equal(t, tt.outcome, res.Outcome, res.Outcome.String())
			assert.Equal(t, tt.subject, res.SubjectID)
			if tt.outcome == OutcomeAuthenticated {
				assert.True(t, res.Allowed())
				assert.Equal(t, tt.raw, res.Token)
			} else {
				assert.False(t, res.Allowed())
				assert.Empty(t, res.Token)
			}
		})
	}
}

func TestEvaluateSignedToken(t *testing.T) {
	now := time.Now()
	tok := signedToken(t, jwt.MapClaims{"sub": "resident-1", "exp": now.Add(time.Hour).Unix()})

	res := Evaluate(tok, now)
	require.Equal(t, OutcomeAuthenticated, res.Outcome)
	assert.Equal(t, "resident-1", res.SubjectID)
	assert.WithinDuration(t, now.Add(time.Hour), res.ExpiresAt, time.Second)
	assert.Equal(t, StatusAuthenticated, res.Status())
}

func TestEvaluateHugeExpiry(t *testing.T) {
	res := Evaluate(rawToken(`{"exp":1e300}`), time.Now())
	require.Equal(t, OutcomeAuthenticated, res.Outcome)
	assert.Equal(t, maxExpiry, res.ExpiresAt)
	assert.True(t, res.ExpiresAt.After(time.Now()))
}

func TestResultStatus(t *testing.T) {
	assert.Equal(t, StatusUnauthenticated, Result{Outcome: OutcomeMissing}.Status())
	assert.Equal(t, StatusUnauthenticated, Result{Outcome: OutcomeMalformed}.Status())
	assert.Equal(t, StatusExpired, Result{Outcome: OutcomeExpired}.Status())
	assert.Equal(t, StatusAuthenticated, Result{Outcome: OutcomeAuthenticated}.Status())
}

func TestDecodeClaimsIgnoresSignatureAndHeader(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"exp": 1_900_000_000, "id": "abc"})
	parts := strings.SplitN(tok, ".", 2)
	tampered := "garbage." + parts[1] + "-forged"

	claims, err := DecodeClaims(tampered)
	require.NoError(t, err)
	assert.Equal(t, float64(1_900_000_000), claims.Exp)
	assert.Equal(t, "abc", claims.SubjectID)
}
