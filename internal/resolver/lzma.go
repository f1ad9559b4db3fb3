package resolver

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// decompressLzma decompresses a JVM runtime file's lzma-encoded payload.
// Grounded on the DOMAIN STACK entry wiring ulikunitz/xz for the
// JvmContent.File.Downloads.Lzma variant of spec §4.3.
func decompressLzma(data []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("resolver: open lzma stream: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("resolver: decompress lzma stream: %w", err)
	}
	return out, nil
}
