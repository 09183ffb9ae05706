package cert

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

var errEncryptedKey = errors.New("encrypted private keys are not supported")

// NativeParser parses artifacts in-process with crypto/x509.
type NativeParser struct{}

func (NativeParser) ModulusFingerprint(ctx context.Context, path string, f Format) (Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return "", parseErr(path, f, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", parseErr(path, f, err)
	}

	var pub any
	switch f {
	case FormatX509:
		c, err := ParseCertBytes(data)
		if err != nil {
			return "", parseErr(path, f, err)
		}
		pub = c.PublicKey
	case FormatPKCS10:
		csr, err := ParseCSRBytes(data)
		if err != nil {
			return "", parseErr(path, f, err)
		}
		pub = csr.PublicKey
	case FormatRSAKey:
		pub, err = parseKeyBytes(data)
		if err != nil {
			return "", parseErr(path, f, err)
		}
	default:
		return "", parseErr(path, f, fmt.Errorf("unsupported format"))
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return "", parseErr(path, f, fmt.Errorf("%w: %s key", ErrNotRSA, keyAlgorithm(pub)))
	}
	return fingerprintRSA(rsaPub), nil
}

func (NativeParser) ValidityWindow(ctx context.Context, path string) (ValidityWindow, error) {
	if err := ctx.Err(); err != nil {
		return ValidityWindow{}, parseErr(path, FormatX509, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ValidityWindow{}, parseErr(path, FormatX509, err)
	}
	c, err := ParseCertBytes(data)
	if err != nil {
		return ValidityWindow{}, parseErr(path, FormatX509, err)
	}
	return ValidityWindow{
		NotBefore: Boundary{Raw: FormatOpenSSLTime(c.NotBefore), Time: c.NotBefore},
		NotAfter:  Boundary{Raw: FormatOpenSSLTime(c.NotAfter), Time: c.NotAfter},
	}, nil
}

// ParseCertBytes parses the first certificate from PEM or raw DER bytes.
// For a bundle this is the leaf, matching what `openssl x509` reads.
func ParseCertBytes(data []byte) (*x509.Certificate, error) {
	// Try PEM first.
	rest := data
	for {
		block, r := pem.Decode(rest)
		if block == nil {
			break
		}
		rest = r
		if block.Type != "CERTIFICATE" {
			continue
		}
		return x509.ParseCertificate(block.Bytes)
	}

	// DER fallback.
	return x509.ParseCertificate(data)
}

// ParseCSRBytes parses a PKCS#10 request from PEM or raw DER bytes.
func ParseCSRBytes(data []byte) (*x509.CertificateRequest, error) {
	rest := data
	for {
		block, r := pem.Decode(rest)
		if block == nil {
			break
		}
		rest = r
		if block.Type != "CERTIFICATE REQUEST" && block.Type != "NEW CERTIFICATE REQUEST" {
			continue
		}
		return x509.ParseCertificateRequest(block.Bytes)
	}

	return x509.ParseCertificateRequest(data)
}

// parseKeyBytes returns the public half of the first key found in data.
// Private keys may be PKCS#1, PKCS#8 or OpenSSH; public keys PKIX or PKCS#1.
func parseKeyBytes(data []byte) (any, error) {
	rest := data
	for {
		block, r := pem.Decode(rest)
		if block == nil {
			break
		}
		rest = r

		if strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED") {
			return nil, errEncryptedKey
		}

		switch block.Type {
		case "RSA PRIVATE KEY":
			k, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, err
			}
			return &k.PublicKey, nil
		case "PRIVATE KEY":
			k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, err
			}
			return publicOf(k), nil
		case "EC PRIVATE KEY":
			k, err := x509.ParseECPrivateKey(block.Bytes)
			if err != nil {
				return nil, err
			}
			return &k.PublicKey, nil
		case "ENCRYPTED PRIVATE KEY":
			return nil, errEncryptedKey
		case "OPENSSH PRIVATE KEY":
			k, err := ssh.ParseRawPrivateKey(pem.EncodeToMemory(block))
			if err != nil {
				var missing *ssh.PassphraseMissingError
				if errors.As(err, &missing) {
					return nil, errEncryptedKey
				}
				return nil, err
			}
			return publicOf(k), nil
		case "RSA PUBLIC KEY":
			return x509.ParsePKCS1PublicKey(block.Bytes)
		case "PUBLIC KEY":
			return x509.ParsePKIXPublicKey(block.Bytes)
		}
	}

	// DER fallback.
	if k, err := x509.ParsePKCS1PrivateKey(data); err == nil {
		return &k.PublicKey, nil
	}
	if k, err := x509.ParsePKCS8PrivateKey(data); err == nil {
		return publicOf(k), nil
	}
	return nil, errors.New("no private or public key found")
}

func publicOf(k any) any {
	switch k := k.(type) {
	case *rsa.PrivateKey:
		return &k.PublicKey
	case *ecdsa.PrivateKey:
		return &k.PublicKey
	case ed25519.PrivateKey:
		return k.Public()
	case *ed25519.PrivateKey:
		return k.Public()
	default:
		return k
	}
}

func keyAlgorithm(pub any) string {
	switch pub.(type) {
	case *ecdsa.PublicKey:
		return "ECDSA"
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return fmt.Sprintf("%T", pub)
	}
}

// FormatOpenSSLTime renders t the way `openssl x509 -dates` prints it.
func FormatOpenSSLTime(t time.Time) string {
	return t.UTC().Format(opensslTimeLayout)
}
