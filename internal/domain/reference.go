package domain

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Reference prefixes. Generation is probabilistic; the store-level unique
// constraint on the reference column is the authoritative guard.
const (
	RefTransaction = "TXN"
	RefWire        = "WT"
	RefReceipt     = "RCPT"
)

// NewReference builds a prefix-tagged, human-traceable identifier, e.g.
// "TXN-9F4A31BC".
func NewReference(prefix string) string {
	id := uuid.NewString()
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

// ReversalReference derives the reference for a reversal from its original,
// keeping the pair traceable.
func ReversalReference(original string) string {
	return "REV-" + original
}

// NewAccountNumber generates a 12-digit account number with a non-zero lead.
// Uniqueness is enforced by the account store.
func NewAccountNumber() string {
	var sb strings.Builder
	sb.WriteByte(byte('1' + randomInt(9)))
	for i := 0; i < 11; i++ {
		sb.WriteByte(byte('0' + randomInt(10)))
	}
	return sb.String()
}

func randomInt(n int64) int {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
