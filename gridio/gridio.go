// Package gridio reads and writes grids in a private on-disk format.
//
// The format is a small header followed by a snappy-compressed gob encoding
// of the grid struct:
//
//	offset  size  field
//	0       6     magic "OPGRID"
//	6       1     version (currently 1)
//	7       1     format byte: compression in bits 5-7, checksum in bits 3-4
//	8       4     payload length, little endian
//	12      4     CRC32 (IEEE) of the compressed payload, 0 when unchecked
//	16      -     payload
//
// The layout is internal to this module; the only stable contract is that a
// grid written by Write is read back by Read with identical topology.
package gridio

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/golang/snappy"

	"github.com/openporous/gridcore/grid"
)

// Compression identifies the payload compression.
type Compression uint8

const (
	Uncompressed Compression = 0
	Snappy       Compression = 1
)

// Checksum identifies the payload error check.
type Checksum uint8

const (
	NoChecksum Checksum = 0
	CRC32      Checksum = 1
)

var magic = []byte("OPGRID")

const (
	formatVersion = 1
	headerLen     = 16
)

func encodeFormat(c Compression, ck Checksum) byte {
	return (byte(c)&0x07)<<5 | (byte(ck)&0x03)<<3
}

func decodeFormat(b byte) (Compression, Checksum) {
	return Compression(b >> 5), Checksum((b >> 3) & 0x03)
}

// Write stores g at path with snappy compression and a CRC32 checksum.
func Write(path string, g *grid.Grid) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(g); err != nil {
		return fmt.Errorf("encoding grid: %w", err)
	}
	compressed := snappy.Encode(nil, payload.Bytes())

	buf := make([]byte, headerLen, headerLen+len(compressed))
	copy(buf, magic)
	buf[6] = formatVersion
	buf[7] = encodeFormat(Snappy, CRC32)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(buf[12:16], crc32.ChecksumIEEE(compressed))
	buf = append(buf, compressed...)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing grid file: %w", err)
	}
	return nil
}

// Read loads a grid from path. It fails with an error naming the path when
// the file is absent, truncated, corrupt, or structurally inconsistent.
func Read(path string) (*grid.Grid, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file %s: %w", path, err)
	}
	if len(buf) < headerLen || !bytes.Equal(buf[:6], magic) {
		return nil, fmt.Errorf("file %s is not a grid file", path)
	}
	if buf[6] != formatVersion {
		return nil, fmt.Errorf("file %s has unsupported grid format version %d", path, buf[6])
	}
	compression, checksum := decodeFormat(buf[7])
	length := binary.LittleEndian.Uint32(buf[8:12])
	stored := binary.LittleEndian.Uint32(buf[12:16])
	if int(length) != len(buf)-headerLen {
		return nil, fmt.Errorf("file %s is truncated: payload %d of %d bytes",
			path, len(buf)-headerLen, length)
	}
	payload := buf[headerLen:]

	if checksum == CRC32 && crc32.ChecksumIEEE(payload) != stored {
		return nil, fmt.Errorf("file %s fails checksum", path)
	}
	switch compression {
	case Snappy:
		payload, err = snappy.Decode(nil, payload)
		if err != nil {
			return nil, fmt.Errorf("file %s: decompressing payload: %w", path, err)
		}
	case Uncompressed:
	default:
		return nil, fmt.Errorf("file %s uses unknown compression %d", path, compression)
	}

	g := new(grid.Grid)
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(g); err != nil {
		return nil, fmt.Errorf("file %s: decoding grid: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("file %s holds an inconsistent grid: %w", path, err)
	}
	return g, nil
}
