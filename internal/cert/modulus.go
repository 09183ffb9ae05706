package cert

import (
	"crypto/md5"
	"crypto/rsa"
	"encoding/hex"
	"fmt"
	"strings"
)

// FingerprintModulus hashes a hex modulus the same way
// `openssl x509 -noout -modulus -in f | openssl md5` does, so fingerprints
// printed by certcheck can be compared with the openssl pipeline by hand.
func FingerprintModulus(modulusHex string) Fingerprint {
	line := "Modulus=" + strings.ToUpper(strings.TrimSpace(modulusHex)) + "\n"
	sum := md5.Sum([]byte(line))
	return Fingerprint(hex.EncodeToString(sum[:]))
}

func fingerprintRSA(pub *rsa.PublicKey) Fingerprint {
	// openssl prints the modulus as upper-case hex without leading zeros.
	return FingerprintModulus(fmt.Sprintf("%X", pub.N))
}

func parseModulus(stdout []byte) (string, bool) {
	s := strings.TrimSpace(string(stdout))
	// Expected: "Modulus=ABCDEF..."
	const pfx = "Modulus="
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, pfx) {
			return strings.TrimSpace(strings.TrimPrefix(line, pfx)), true
		}
	}
	return "", false
}
