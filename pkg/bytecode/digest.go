package bytecode

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode so equal chunks encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// digestImage is the encoded form hashed by Digest.
type digestImage struct {
	Code      []byte    `cbor:"1,keyasint"`
	Constants []float64 `cbor:"2,keyasint"`
	Lines     [][2]int  `cbor:"3,keyasint"`
}

// Digest returns the SHA-256 of the chunk's canonical CBOR encoding.
// Chunks built by the same sequence of appends have equal digests.
func (c *Chunk) Digest() ([32]byte, error) {
	img := digestImage{
		Code:      c.code,
		Constants: make([]float64, len(c.constants)),
		Lines:     make([][2]int, 0, c.lines.Len()),
	}
	for i, v := range c.constants {
		img.Constants[i] = float64(v)
	}
	for _, run := range c.lines.runs {
		img.Lines = append(img.Lines, [2]int{run.Length, run.Line})
	}

	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		return [32]byte{}, fmt.Errorf("bytecode: encode chunk: %w", err)
	}
	return sha256.Sum256(data), nil
}
