package registration

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// OrgCode is the fixed organization prefix of every UHID.
const OrgCode = "ASR"

// locFallback is used when the patient record has no city.
const locFallback = "UNK"

// maxSequence bounds the random 7-digit sequence part, [1, 9999999].
const maxSequence = 9_999_999

// NewUHID formats a UHID as ORG/LOC/YY/NNNNNNN. LOC is the first three
// letters of the city uppercased, YY the two-digit year of now.
//
// The sequence is random, so the value is not guaranteed unique on its
// own; the patients table carries a unique constraint on uhid and the
// writer retries with a fresh sequence when an insert trips it.
func NewUHID(city string, now time.Time, sequence int) string {
	loc := locFallback
	if trimmed := strings.TrimSpace(city); trimmed != "" {
		loc = strings.ToUpper(trimmed)
		if len(loc) > 3 {
			loc = loc[:3]
		}
	}
	year := now.Format("06")
	return fmt.Sprintf("%s/%s/%s/%07d", OrgCode, loc, year, sequence)
}

// GenerateUHID draws a fresh random sequence for the given city.
func GenerateUHID(city string, now time.Time) string {
	return NewUHID(city, now, rand.Intn(maxSequence)+1)
}
