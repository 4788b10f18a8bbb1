package podlock

import (
	"crypto/sha1" //nolint:gosec // SPEC CHECKSUMS are defined as SHA-1 podspec digests.
	"encoding/hex"
)

// DigestFunc computes the content digest recorded in SPEC CHECKSUMS.
// It must be a pure function of its input.
type DigestFunc func(content []byte) string

// DigestContent is the default digest: the lowercase hex SHA-1 of the
// content, matching the checksums CocoaPods records for podspec files.
func DigestContent(content []byte) string {
	sum := sha1.Sum(content) //nolint:gosec // see above
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum checks whether content matches an expected digest.
func VerifyChecksum(content []byte, expected string) bool {
	return DigestContent(content) == expected
}
