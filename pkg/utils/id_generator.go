package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const (
	// TxnIDPrefix is the fixed human-readable prefix of every transaction id.
	TxnIDPrefix = "TXN-"

	// txnIDSuffixBytes is the random suffix width: 8 bytes = 64 bits of entropy,
	// rendered as 16 uppercase hex characters. Every call site uses this one
	// width, transfer legs included.
	txnIDSuffixBytes = 8
)

// NewTransactionID returns an opaque transaction id.
// Format: TXN-{16_UPPERCASE_HEX}
// Example: TXN-9F2C41A07B3D8E65
func NewTransactionID() string {
	b := make([]byte, txnIDSuffixBytes)
	if _, err := rand.Read(b); err != nil {
		panic("id: crypto/rand unavailable: " + err.Error())
	}
	return TxnIDPrefix + strings.ToUpper(hex.EncodeToString(b))
}
