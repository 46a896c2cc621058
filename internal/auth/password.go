package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt digest. Cost comes from security config;
// bcrypt.DefaultCost (10) when zero.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword never errors: false on mismatch, true on match.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
