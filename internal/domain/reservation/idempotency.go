package reservation

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Requests are detected as duplicates without a client-supplied token: the
// natural key pins the booking attempt (who, where, when) and the request
// signature pins the rest of the payload, so a byte-different retry of the
// same attempt is distinguishable from a genuinely different request that
// targets the same dates.

// keySep joins normalized fields before hashing. 0x1F (unit separator)
// cannot appear in trimmed ids or ISO dates.
const keySep = "\x1f"

const dateLayout = "2006-01-02"

// NaturalKey returns the deterministic identity of a booking attempt as a
// hex-encoded SHA-256 digest over (guest, unit, check-in, check-out).
// Incidental formatting differences (case, surrounding whitespace, add-on
// order) never change the key.
func NaturalKey(req Request) string {
	fields := []string{
		normalizeID(req.GuestID),
		normalizeID(req.UnitID),
		normalizeDate(req.CheckIn),
		normalizeDate(req.CheckOut),
	}
	return digest(fields)
}

// Signature fingerprints the full request: the natural-key fields plus
// guest count and the add-on set. Two requests with equal keys but
// different signatures are a conflicting duplicate, not a retry.
func Signature(req Request) string {
	fields := []string{
		normalizeID(req.GuestID),
		normalizeID(req.UnitID),
		normalizeDate(req.CheckIn),
		normalizeDate(req.CheckOut),
		strconv.Itoa(req.Guests),
	}
	fields = append(fields, NormalizeAddOns(req.AddOns)...)
	return digest(fields)
}

// NormalizeAddOns returns the add-on identifiers trimmed, deduplicated and
// sorted, so ordering and repetition never affect the signature.
func NormalizeAddOns(addOns []string) []string {
	seen := make(map[string]struct{}, len(addOns))
	var out []string
	for _, a := range addOns {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeDate(t time.Time) string {
	return Date(t).Format(dateLayout)
}

func digest(fields []string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, keySep)))
	return hex.EncodeToString(sum[:])
}
