package datfile

import (
	"fmt"

	"github.com/udisondev/l2skilldata/internal/crypto"
)

// Transform is the reversible byte transform applied to a container body.
// Both methods work in place on a body whose length is a multiple of 8.
type Transform interface {
	Encrypt(body []byte) error
	Decrypt(body []byte) error
}

type blowfishTransform struct {
	cipher *crypto.BlowfishCipher
}

// NewBlowfishTransform returns a Blowfish ECB transform with the given key.
func NewBlowfishTransform(key []byte) (Transform, error) {
	c, err := crypto.NewBlowfishCipher(key)
	if err != nil {
		return nil, fmt.Errorf("dat transform: %w", err)
	}
	return &blowfishTransform{cipher: c}, nil
}

func (t *blowfishTransform) Encrypt(body []byte) error {
	return t.cipher.Encrypt(body, 0, len(body))
}

func (t *blowfishTransform) Decrypt(body []byte) error {
	return t.cipher.Decrypt(body, 0, len(body))
}
