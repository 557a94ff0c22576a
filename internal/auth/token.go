package auth

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Outcome is the result of checking one credential slot.
type Outcome int

const (
	OutcomeMissing Outcome = iota
	OutcomeMalformed
	OutcomeExpired
	OutcomeAuthenticated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMissing:
		return "missing"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeExpired:
		return "expired"
	case OutcomeAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Status collapses an Outcome to what a visitor is.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusExpired
	StatusAuthenticated
)

// Result describes a checked slot. SubjectID, Token and ExpiresAt are only
// set when Outcome is OutcomeAuthenticated.
type Result struct {
	Outcome   Outcome
	SubjectID string
	Token     string
	ExpiresAt time.Time
}

// Status maps Missing and Malformed to Unauthenticated.
func (r Result) Status() Status {
	switch r.Outcome {
	case OutcomeAuthenticated:
		return StatusAuthenticated
	case OutcomeExpired:
		return StatusExpired
	default:
		return StatusUnauthenticated
	}
}

// Allowed reports whether a gate lets the visitor through.
func (r Result) Allowed() bool {
	return r.Outcome == OutcomeAuthenticated
}

var (
	errSegments = errors.New("token must have three segments")
	errNoExpiry = errors.New("token payload has no numeric exp")
	errTrailing = errors.New("token payload has data after the JSON object")
)

// maxExpiry bounds ExpiresAt for exp values beyond what time.Time can hold.
var maxExpiry = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// subjectKeys are tried in order to find the subject id.
var subjectKeys = []string{"sub", "id", "userId", "_id"}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims is the part of a token payload the portal reads.
type Claims struct {
	Exp       float64
	SubjectID string
}

// DecodeClaims reads the payload segment of raw without verifying the
// signature. The header segment is not inspected.
func DecodeClaims(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, errSegments
	}
	payload, err := decodePayload(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("decode payload: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return Claims{}, fmt.Errorf("parse payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Claims{}, errTrailing
	}
	if fields == nil {
		return Claims{}, errNoExpiry
	}

	num, ok := fields["exp"].(json.Number)
	if !ok {
		return Claims{}, errNoExpiry
	}
	exp, err := num.Float64()
	if err != nil || math.IsNaN(exp) || math.IsInf(exp, 0) {
		return Claims{}, errNoExpiry
	}

	claims := Claims{Exp: exp}
	for _, key := range subjectKeys {
		if id := subjectString(fields[key]); id != "" {
			claims.SubjectID = id
			break
		}
	}
	return claims, nil
}

// decodePayload accepts base64url and, failing that, the standard alphabet.
// Padding is optional in both.
func decodePayload(seg string) ([]byte, error) {
	payload, err := segmentParser.DecodeSegment(seg)
	if err == nil {
		return payload, nil
	}
	if std, stdErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(seg, "=")); stdErr == nil {
		return std, nil
	}
	return nil, err
}

func subjectString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// Evaluate classifies a raw slot value at the given instant. Expiry is
// compared in fractional seconds; exp equal to now counts as expired.
func Evaluate(raw string, now time.Time) Result {
	if raw == "" {
		return Result{Outcome: OutcomeMissing}
	}
	claims, err := DecodeClaims(raw)
	if err != nil {
		return Result{Outcome: OutcomeMalformed}
	}
	nowSec := float64(now.UnixNano()) / float64(time.Second)
	if claims.Exp <= nowSec {
		return Result{Outcome: OutcomeExpired}
	}
	return Result{
		Outcome:   OutcomeAuthenticated,
		SubjectID: claims.SubjectID,
		Token:     raw,
		ExpiresAt: expiryTime(claims.Exp),
	}
}

func expiryTime(exp float64) time.Time {
	if exp >= float64(maxExpiry.Unix()) {
		return maxExpiry
	}
	sec, frac := math.Modf(exp)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}
