// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is password hashing: store only the hash, then verify user
// input by comparing the plaintext against the stored value.
package hash

// Hash hashes plaintext values and verifies them against stored hashes.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
