package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"medico/internal/errors"
)

// ContentChecksum streams r and returns its hex SHA256 digest along with the number of bytes read.
func ContentChecksum(r io.Reader) (string, int64, error) {
	sha256Hash := sha256.New()

	n, err := io.Copy(sha256Hash, r)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to calculate checksum")
	}

	return hex.EncodeToString(sha256Hash.Sum(nil)), n, nil
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
