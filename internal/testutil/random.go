package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomSuffix returns a short random hex string for unique test data.
func RandomSuffix() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RandomEmail returns a unique test email address.
func RandomEmail() string {
	return fmt.Sprintf("test-%s@example.com", RandomSuffix())
}

// RandomUsuario returns a unique test login name.
func RandomUsuario() string {
	return "user-" + RandomSuffix()
}
