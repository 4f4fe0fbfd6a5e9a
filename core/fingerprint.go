package core

import (
	"crypto/sha256"
	"fmt"

	"github.com/arboclima/arboclima/schema"
)

// Fingerprint creates the deterministic cache key for one analysis
// request tuple. Identical tuples always map to the same fingerprint.
func Fingerprint(disease schema.Disease, variable schema.ClimateVariable, region schema.Region, year, lagMonths int) string {
	key := fmt.Sprintf("%s:%s:%s:%d:%d", disease, variable, region, year, lagMonths)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
