package common

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
)

// HashBufferSize is the fixed read size used while digesting file contents.
const HashBufferSize = 32 * 1024

// HashFile streams path through SHA-256 and returns the lowercase hex digest.
// Memory use is bounded by HashBufferSize regardless of file size.
func HashFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", NewIoError("hash", path, err)
	}
	defer file.Close()

	digest, err := HashReader(ctx, file)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", NewIoError("hash", path, err)
	}
	return digest, nil
}

// HashReader digests r in HashBufferSize chunks, checking ctx between chunks.
func HashReader(ctx context.Context, r io.Reader) (string, error) {
	hasher := sha256.New()
	buffer := make([]byte, HashBufferSize)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, readErr := r.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return "", readErr
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
