package bills

import (
	"crypto/md5"
	"encoding/hex"
)

// IdentityHash returns the hex MD5 digest of date concatenated with
// restaurant. Two bills with identical date and restaurant text share a hash;
// that collision is accepted and callers must not rely on uniqueness.
func IdentityHash(date, restaurant string) string {
	sum := md5.Sum([]byte(date + restaurant))
	return hex.EncodeToString(sum[:])
}
