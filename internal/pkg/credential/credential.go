package credential

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"

// Code prefixes per role.
const (
	PrefixEmployee = "EMP"
	PrefixManager  = "MGR"
	PrefixAdmin    = "ADM"
)

// NewAccountCode returns "<prefix>-XXXXXX" with six characters from an unambiguous alphabet.
func NewAccountCode(prefix string) (string, error) {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate account code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return prefix + "-" + string(buf), nil
}

// NewAccessCode returns an 8 hex character one-time login secret.
func NewAccessCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hashed), nil
}

func (h *Hasher) Matches(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
