// Package licensekey generates and validates Roadwise license keys.
//
// Keys look like RW-7Q2M-K9PX-4TNA-C3VJ: a fixed prefix, three random groups
// and a final group holding a checksum of the random part. The checksum lets
// the API reject mistyped keys without a database lookup. The alphabet
// avoids characters that are easy to confuse when read aloud (I, L, O, U).
package licensekey

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	prefix     = "RW"
	alphabet   = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	groupLen   = 4
	dataGroups = 3
)

// Validation errors
var (
	ErrMalformed   = errors.New("license key is malformed")
	ErrBadChecksum = errors.New("license key checksum mismatch")
)

// Generate creates a new random license key.
func Generate() (string, error) {
	buf := make([]byte, dataGroups*groupLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	data := make([]byte, dataGroups*groupLen)
	for i, b := range buf {
		data[i] = alphabet[int(b)%len(alphabet)]
	}

	groups := make([]string, 0, dataGroups+2)
	groups = append(groups, prefix)
	for i := 0; i < dataGroups; i++ {
		groups = append(groups, string(data[i*groupLen:(i+1)*groupLen]))
	}
	groups = append(groups, checksum(string(data)))

	return strings.Join(groups, "-"), nil
}

// Validate checks the format and checksum of a key. It returns the
// normalized (upper-case, trimmed) key on success.
func Validate(key string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(key))

	groups := strings.Split(normalized, "-")
	if len(groups) != dataGroups+2 || groups[0] != prefix {
		return "", ErrMalformed
	}
	for _, g := range groups[1:] {
		if len(g) != groupLen {
			return "", ErrMalformed
		}
		for _, c := range g {
			if !strings.ContainsRune(alphabet, c) {
				return "", ErrMalformed
			}
		}
	}

	data := strings.Join(groups[1:dataGroups+1], "")
	if checksum(data) != groups[dataGroups+1] {
		return "", ErrBadChecksum
	}

	return normalized, nil
}

// checksum derives the final key group from the random part.
func checksum(data string) string {
	sum := xxhash.Sum64String(data)
	out := make([]byte, groupLen)
	for i := range out {
		out[i] = alphabet[int(sum%uint64(len(alphabet)))]
		sum /= uint64(len(alphabet))
	}
	return string(out)
}
