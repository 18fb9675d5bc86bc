package security

import "golang.org/x/crypto/bcrypt"

// bcrypt cost used for every stored credential. Each call salts with a
// fresh random salt, so two hashes of the same password never match.
const hashCost = 16

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
// Returns nil only on a match.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
