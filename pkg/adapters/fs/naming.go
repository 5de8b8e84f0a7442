package fs

import (
	"strconv"
	"strings"

	"github.com/aretw0/inspekt/pkg/core"
)

// On-disk naming convention of a capture record.
const (
	PhotoPrefix    = "photo_"
	PhotoExt       = ".jpg"
	MetadataPrefix = "metadata_"
)

// PhotoName returns the photo artifact name for tok.
func PhotoName(tok core.Token) string {
	return PhotoPrefix + tok.String() + PhotoExt
}

// MetadataName returns the metadata artifact name for tok and extension ext.
func MetadataName(tok core.Token, ext string) string {
	return MetadataPrefix + tok.String() + ext
}

// ParsePhotoName extracts the token from a photo artifact name.
// Only "photo_<digits>.jpg" matches; the digits are parsed as a number
// because tokens are not zero-padded and compare wrongly as strings.
func ParsePhotoName(name string) (core.Token, bool) {
	if !strings.HasPrefix(name, PhotoPrefix) || !strings.HasSuffix(name, PhotoExt) {
		return 0, false
	}
	digits := name[len(PhotoPrefix) : len(name)-len(PhotoExt)]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return core.Token(n), true
}

// ParseMetadataName extracts the token and extension from a metadata
// artifact name such as "metadata_1700000000000.json".
func ParseMetadataName(name string) (core.Token, string, bool) {
	if !strings.HasPrefix(name, MetadataPrefix) {
		return 0, "", false
	}
	rest := name[len(MetadataPrefix):]
	dot := strings.IndexByte(rest, '.')
	if dot <= 0 {
		return 0, "", false
	}
	tok, ok := ParsePhotoName(PhotoPrefix + rest[:dot] + PhotoExt)
	if !ok {
		return 0, "", false
	}
	return tok, rest[dot:], true
}
