package repository

import (
	"crypto/rand"
	"math/big"
)

const numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Confirmation numbers keep the original TF-prefixed 9-character form.
// Uniqueness is enforced by the stores with a check-and-retry on insert.
func newConfirmationNumber() string {
	return "TF" + randomCode(9)
}

func newTicketNumber() string {
	return "TKT-" + randomCode(10)
}

func randomCode(n int) string {
	max := big.NewInt(int64(len(numberAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken; there is no reasonable recovery at this level.
			panic(err)
		}
		b[i] = numberAlphabet[idx.Int64()]
	}
	return string(b)
}
