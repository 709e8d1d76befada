package pkg

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"time"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var codeRand = mrand.New(mrand.NewSource(time.Now().UnixNano()))

// RandString produces a short join code for the game directory.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[codeRand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// GenerateToken returns an opaque session token for a seated player.
func GenerateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return RandString(32)
	}
	return hex.EncodeToString(b)
}
