package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionIDFormat(t *testing.T) {
	id := NewTransactionID()
	assert.True(t, strings.HasPrefix(id, TxnIDPrefix))
	assert.Len(t, id, len(TxnIDPrefix)+16)

	suffix := strings.TrimPrefix(id, TxnIDPrefix)
	for _, c := range suffix {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}
}

func TestNewTransactionIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := NewTransactionID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAllCallSitesShareOneWidth(t *testing.T) {
	a, b := NewTransactionID(), NewTransactionID()
	assert.Len(t, b, len(a))
}
