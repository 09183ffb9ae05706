package check

import (
	"strings"

	"github.com/nickromney/certcheck/internal/cert"
)

// ArtifactType binds a file extension to the format it is parsed as.
type ArtifactType struct {
	Ext    string
	Format cert.Format
}

// artifactTypes is in registration order, which is also the order artifacts
// are checked in; the first one present supplies a group's reference modulus.
var artifactTypes = []ArtifactType{
	{Ext: "bundle", Format: cert.FormatX509},
	{Ext: "csr", Format: cert.FormatPKCS10},
	{Ext: "crt", Format: cert.FormatX509},
	{Ext: "key", Format: cert.FormatRSAKey},
}

// Resolve maps an extension ("crt" or ".CRT") to its format.
func Resolve(ext string) (cert.Format, bool) {
	ext = normalizeExt(ext)
	for _, t := range artifactTypes {
		if t.Ext == ext {
			return t.Format, true
		}
	}
	return "", false
}

// Extensions returns the recognized extensions in registration order.
func Extensions() []string {
	out := make([]string, 0, len(artifactTypes))
	for _, t := range artifactTypes {
		out = append(out, t.Ext)
	}
	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
