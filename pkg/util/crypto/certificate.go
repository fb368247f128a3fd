package crypto

import (
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"time"
)

func GenerateCertificate(template *x509.Certificate, keyPair KeyPair) (*x509.Certificate, error) {
	derBytes, err := x509.CreateCertificate(rand.Reader, template, template, keyPair.Public, keyPair.Private)
	if err != nil {
		return nil, fmt.Errorf("failed to generate the certificate for key: %w", err)
	}

	cert, err := x509.ParseCertificate(derBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate from DER data: %w", err)
	}
	return cert, nil
}

// CertificateTemplate returns a template for a self-signed certificate valid
// for one year, matching the lifetime of the password credential.
func CertificateTemplate(displayName string) *x509.Certificate {
	notBefore := time.Now()
	notAfter := notBefore.AddDate(1, 0, 0)

	return &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: fmt.Sprintf("%s.exchangerator.nais.io", displayName),
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}
}

func ConvertToPem(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
}
