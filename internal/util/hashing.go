package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/go-sod/bnelim/internal/geom"
)

// Fingerprint hashes the exact coordinates of a point set in order. Two
// sets share a fingerprint only if they are bit-identical.
type Fingerprint [32]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:8])
}

func HashPoints(points geom.Set) Fingerprint {
	buffer := GetBytesBuffer()
	defer PutBytesBuffer(buffer)
	for i := range points {
		buffer.WriteString(strconv.FormatFloat(points[i].X, 'g', -1, 64))
		buffer.WriteByte(',')
		buffer.WriteString(strconv.FormatFloat(points[i].Y, 'g', -1, 64))
		buffer.WriteByte(';')
	}
	return sha256.Sum256(buffer.Bytes())
}
