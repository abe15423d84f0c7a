package filename

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const hashChunkSize = 64 * 1024

// ErrFileTooSmall is returned for files shorter than one hash chunk
var ErrFileTooSmall = errors.New("file too small to hash")

// MovieHash computes the OpenSubtitles hash: the file size plus the sums of
// the little-endian 64-bit words of the first and last 64 KiB.
func MovieHash(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat file: %w", err)
	}
	size := info.Size()
	if size < hashChunkSize {
		return "", size, ErrFileTooSmall
	}

	hash := uint64(size)
	buf := make([]byte, hashChunkSize)
	for _, offset := range []int64{0, size - hashChunkSize} {
		if _, err := file.ReadAt(buf, offset); err != nil && !errors.Is(err, io.EOF) {
			return "", size, fmt.Errorf("failed to read file: %w", err)
		}
		for i := 0; i < hashChunkSize; i += 8 {
			hash += binary.LittleEndian.Uint64(buf[i : i+8])
		}
	}

	return fmt.Sprintf("%016x", hash), size, nil
}
