package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/candela-systems/scholarmatch/core"
)

// Key prefixes for different data types
const (
	profilePrefix            = "pflrec"
	profileFingerprintPrefix = "pflfpr"
	profileDepartmentPrefix  = "pfldep"
	profileIDSeq             = "pflrecseq"
)

// makeProfileKey generates a key for a profile by ID. The ID is encoded
// BigEndian so lexicographic iteration order matches insertion order.
func makeProfileKey(id core.ID) []byte {
	prefix := profilePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeFingerprintKey generates a key for the content fingerprint index.
func makeFingerprintKey(fingerprint core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", profileFingerprintPrefix, fingerprint))
}

// makeDepartmentKey generates a composite key for the department index.
// Format: prefix:department:id
func makeDepartmentKey(department string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", profileDepartmentPrefix, department)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic sort within a department follows ID order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDepartmentKey generates a prefix for department queries.
func makePartialDepartmentKey(department string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", profileDepartmentPrefix, department))
}
