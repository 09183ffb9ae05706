package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"
)

// Group is a set of artifacts sharing one RSA key, written as <ID>.<ext>.
type Group struct {
	Dir   string
	ID    string
	Key   *rsa.PrivateKey
	Paths map[string]string
}

// GroupOptions controls MakeGroup. Zero values mean: crt+key, valid from an
// hour ago for a year.
type GroupOptions struct {
	Exts      []string
	NotBefore time.Time
	NotAfter  time.Time
}

// MakeGroup writes a consistent artifact group into dir.
func MakeGroup(t *testing.T, dir, id string, opts GroupOptions) *Group {
	t.Helper()

	if len(opts.Exts) == 0 {
		opts.Exts = []string{"crt", "key"}
	}
	if opts.NotBefore.IsZero() {
		opts.NotBefore = time.Now().Add(-1 * time.Hour)
	}
	if opts.NotAfter.IsZero() {
		opts.NotAfter = time.Now().Add(365 * 24 * time.Hour)
	}

	g := &Group{Dir: dir, ID: id, Key: NewRSAKey(t), Paths: map[string]string{}}
	for _, ext := range opts.Exts {
		path := filepath.Join(dir, id+"."+ext)
		switch ext {
		case "crt":
			WriteCert(t, path, g.Key, opts.NotBefore, opts.NotAfter)
		case "bundle":
			WriteBundle(t, path, g.Key, opts.NotBefore, opts.NotAfter)
		case "csr":
			WriteCSR(t, path, g.Key)
		case "key":
			WriteRSAKey(t, path, g.Key)
		default:
			WriteFile(t, path, "not a certificate\n")
		}
		g.Paths[ext] = path
	}
	return g
}

// NewRSAKey generates an ephemeral 2048-bit RSA key.
func NewRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

// WriteCert writes a self-signed PEM certificate for key.
func WriteCert(t *testing.T, path string, key crypto.Signer, notBefore, notAfter time.Time) {
	t.Helper()
	der := certDER(t, key, "test.local", notBefore, notAfter)
	writePEM(t, path, 0o644, &pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// WriteBundle writes the leaf certificate for key followed by an unrelated
// CA certificate, the usual layout of a .bundle file.
func WriteBundle(t *testing.T, path string, key crypto.Signer, notBefore, notAfter time.Time) {
	t.Helper()
	leaf := certDER(t, key, "test.local", notBefore, notAfter)

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate CA key: %v", err)
	}
	ca := certDER(t, caKey, "Test CA", time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))

	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: leaf})
	data = append(data, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ca})...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
}

// WriteCSR writes a PEM PKCS#10 request signed by key.
func WriteCSR(t *testing.T, path string, key crypto.Signer) {
	t.Helper()
	der, err := x509.CreateCertificateRequest(rand.Reader, &x509.CertificateRequest{
		Subject: pkix.Name{CommonName: "test.local"},
	}, key)
	if err != nil {
		t.Fatalf("create csr: %v", err)
	}
	writePEM(t, path, 0o644, &pem.Block{Type: "CERTIFICATE REQUEST", Bytes: der})
}

// WriteRSAKey writes key as a PKCS#1 PEM private key.
func WriteRSAKey(t *testing.T, path string, key *rsa.PrivateKey) {
	t.Helper()
	writePEM(t, path, 0o600, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
}

// WritePKCS8Key writes key as a PKCS#8 PEM private key.
func WritePKCS8Key(t *testing.T, path string, key crypto.PrivateKey) {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}
	writePEM(t, path, 0o600, &pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// WriteOpenSSHKey writes key in the "OPENSSH PRIVATE KEY" format.
func WriteOpenSSHKey(t *testing.T, path string, key crypto.PrivateKey) {
	t.Helper()
	block, err := ssh.MarshalPrivateKey(key, "test")
	if err != nil {
		t.Fatalf("marshal openssh key: %v", err)
	}
	writePEM(t, path, 0o600, block)
}

// NewECKey generates an ephemeral P-256 key.
func NewECKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate EC key: %v", err)
	}
	return key
}

// WriteFile writes arbitrary contents, for malformed-input tests.
func WriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func certDER(t *testing.T, key crypto.Signer, cn string, notBefore, notAfter time.Time) []byte {
	t.Helper()

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 64))
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   cn,
			Organization: []string{"CertCheck Test"},
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return der
}

func writePEM(t *testing.T, path string, perm os.FileMode, block *pem.Block) {
	t.Helper()
	if err := os.WriteFile(path, pem.EncodeToMemory(block), perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
