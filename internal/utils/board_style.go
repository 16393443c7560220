package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const prefixLetters = "abcdefghijklmnopqrstuvwxyz"

// nodeColors is the palette newly created nodes are colored from.
var nodeColors = []string{
	"#f94144", "#f3722c", "#f8961e", "#f9c74f",
	"#90be6d", "#43aa8b", "#4d908e", "#577590",
}

// GenerateBoardPrefix returns a short random lowercase prefix used to
// build human-readable node labels like "qwert-12".
func GenerateBoardPrefix() (string, error) {
	b := make([]byte, 5)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(prefixLetters))))
		if err != nil {
			return "", fmt.Errorf("failed to generate board prefix: %w", err)
		}
		b[i] = prefixLetters[n.Int64()]
	}
	return string(b), nil
}

// RandomNodeColor picks a color from the palette. Falls back to the
// first palette entry if the randomness source fails.
func RandomNodeColor() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(nodeColors))))
	if err != nil {
		return nodeColors[0]
	}
	return nodeColors[n.Int64()]
}
