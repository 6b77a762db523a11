package devcert

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/google/uuid"
)

// organization is the subject organization of generated certificates.
const organization = "devserver development certificate"

// generate creates a self-signed certificate for hosts and returns the private
// key and certificate as one PEM bundle, key first.
func generate(hosts []string, keyType certcrypto.KeyType, now time.Time, validity time.Duration) ([]byte, error) {
	key, err := certcrypto.GeneratePrivateKey(keyType)
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %w", ErrGenerationFailed, err)
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported key type %s", ErrGenerationFailed, keyType)
	}

	id := uuid.New()
	tmpl := &x509.Certificate{
		SerialNumber: new(big.Int).SetBytes(id[:]),
		Subject: pkix.Name{
			Organization: []string{organization},
			CommonName:   hosts[0],
		},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
		} else {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, signer.Public(), signer)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}

	bundle := certcrypto.PEMEncode(key)
	bundle = append(bundle, certcrypto.PEMEncode(certcrypto.DERCertificateBytes(der))...)
	return bundle, nil
}

// covers reports whether cert is valid for every host. Wildcard hosts such as
// *.app.test must appear verbatim among the DNS names.
func covers(cert *x509.Certificate, hosts []string) bool {
	for _, h := range hosts {
		if strings.HasPrefix(h, "*.") {
			if !slices.ContainsFunc(cert.DNSNames, func(name string) bool {
				return strings.EqualFold(name, h)
			}) {
				return false
			}
			continue
		}
		if err := cert.VerifyHostname(h); err != nil {
			return false
		}
	}
	return true
}
