package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

const RSAKeySize = 2048

type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

func NewRSAKeyPair() (KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, RSAKeySize)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generating RSA key: %w", err)
	}

	return KeyPair{
		Private: privateKey,
		Public:  &privateKey.PublicKey,
	}, nil
}
