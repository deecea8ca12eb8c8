package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DefaultKeyer hashes the document URL under the "doc" prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey returns "doc:<sha256(url)>". The fragment is dropped first
// since it never reaches the server.
func (DefaultKeyer) DocumentKey(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return "doc:" + Hash([]byte(url))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
