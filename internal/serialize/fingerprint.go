package serialize

import (
	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("CML-refactor-document-fingerpr01")

// Fingerprint returns a 64-bit HighwayHash of a document text. Equal
// fingerprints mean the text did not change.
func Fingerprint(text []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}

	_, err = hash.Write(text)

	return hash.Sum64(), err
}
