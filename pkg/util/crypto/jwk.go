package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
)

const (
	KeyUseSignature string = "sig"
)

// Jwk wraps the JSON Web Keys for an issued certificate credential together
// with the PEM-encoded public certificate uploaded to the application.
type Jwk struct {
	Private   jose.JSONWebKey `json:"private"`
	Public    jose.JSONWebKey `json:"public"`
	PublicPem []byte          `json:"-"`
}

// GenerateJwk creates an RSA keypair with a self-signed certificate for the
// given application display name.
func GenerateJwk(displayName string) (Jwk, error) {
	keyPair, err := NewRSAKeyPair()
	if err != nil {
		return Jwk{}, fmt.Errorf("generating keypair: %w", err)
	}

	template := CertificateTemplate(displayName)
	cert, err := GenerateCertificate(template, keyPair)
	if err != nil {
		return Jwk{}, fmt.Errorf("generating certificate: %w", err)
	}

	certificates := []*x509.Certificate{cert}
	x5tSHA1 := sha1.Sum(cert.Raw)
	x5tSHA256 := sha256.Sum256(cert.Raw)
	keyId := uuid.New().String()

	return Jwk{
		Private: jose.JSONWebKey{
			Key:                         keyPair.Private,
			KeyID:                       keyId,
			Use:                         KeyUseSignature,
			Certificates:                certificates,
			CertificateThumbprintSHA1:   x5tSHA1[:],
			CertificateThumbprintSHA256: x5tSHA256[:],
		},
		Public: jose.JSONWebKey{
			Key:                         keyPair.Public,
			KeyID:                       keyId,
			Use:                         KeyUseSignature,
			Certificates:                certificates,
			CertificateThumbprintSHA1:   x5tSHA1[:],
			CertificateThumbprintSHA256: x5tSHA256[:],
		},
		PublicPem: ConvertToPem(cert),
	}, nil
}
