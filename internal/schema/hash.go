// Package schema contains the typed representation of the upstream Mojang
// JSON documents: version manifest, version info, asset index, JVM manifest
// and JVM info, plus the rule DSL types they embed.
package schema

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Sha1Hash is a parsed 40-hex-character SHA-1 digest.
type Sha1Hash [20]byte

// ParseSha1Hash parses a 40-character hex string into a Sha1Hash.
func ParseSha1Hash(s string) (Sha1Hash, error) {
	var h Sha1Hash
	if len(s) != 40 {
		return h, fmt.Errorf("schema: invalid sha1 hash length %d in %q", len(s), s)
	}
	n, err := hex.Decode(h[:], []byte(s))
	if err != nil {
		return h, fmt.Errorf("schema: invalid sha1 hash %q: %w", s, err)
	}
	if n != 20 {
		return h, fmt.Errorf("schema: invalid sha1 hash %q: decoded %d bytes", s, n)
	}
	return h, nil
}

func (h Sha1Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Sha1Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Sha1Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSha1Hash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
