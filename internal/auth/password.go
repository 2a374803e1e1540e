package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2Params holds the cost factors for argon2id hashing.
type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

var defaultArgon2Params = argon2Params{
	memory:      64 * 1024,
	iterations:  3,
	parallelism: 2,
	saltLength:  16,
	keyLength:   32,
}

// hashPassword derives an argon2id hash and encodes it in PHC format so the
// parameters travel with the hash.
func hashPassword(password string) (string, error) {
	p := defaultArgon2Params

	salt := make([]byte, p.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// verifyPassword re-derives the hash with the parameters embedded in the
// encoded value and compares in constant time.
func verifyPassword(password, encoded string) (bool, error) {
	p, salt, hash, err := decodePasswordHash(encoded)
	if err != nil {
		return false, fmt.Errorf("invalid hash format: %w", err)
	}

	other := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)
	return subtle.ConstantTimeCompare(hash, other) == 1, nil
}

func decodePasswordHash(encoded string) (p argon2Params, salt, hash []byte, err error) {
	vals := strings.Split(encoded, "$")
	if len(vals) != 6 {
		return p, nil, nil, fmt.Errorf("hash has %d parts, want 6", len(vals))
	}

	var version int
	if _, err = fmt.Sscanf(vals[2], "v=%d", &version); err != nil {
		return p, nil, nil, err
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("incompatible argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(vals[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, err
	}

	if salt, err = base64.RawStdEncoding.DecodeString(vals[4]); err != nil {
		return p, nil, nil, err
	}
	if hash, err = base64.RawStdEncoding.DecodeString(vals[5]); err != nil {
		return p, nil, nil, err
	}
	p.keyLength = uint32(len(hash))

	return p, salt, hash, nil
}
