// Package security isolates credential comparison behind a one-way hash
// verifier so no caller ever compares raw password strings.
package security

import "golang.org/x/crypto/bcrypt"

type Verifier interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type BcryptVerifier struct {
	cost int
}

func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: 12}
}

func (v *BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v *BcryptVerifier) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
