// Package pngchunk writes PNG files carrying physical-DPI metadata.
//
// Go's png encoder never emits a pHYs chunk, and downstream print tooling
// reads the embedded pixels-per-meter to size the artwork on media, so the
// chunk is spliced into the encoded stream by hand per the PNG spec.
package pngchunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"

	"gangsheet-renderer/internal/geom"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// sig(8) + IHDR length(4) + type(4) + data(13) + crc(4). pHYs must come
// before the first IDAT; right after IHDR is always valid.
const physInsertOffset = 8 + 25

// Encode writes img to w as a PNG whose pHYs chunk declares the given DPI on
// both axes.
func Encode(w io.Writer, img image.Image, dpi float64) error {
	if dpi <= 0 {
		return fmt.Errorf("pngchunk: invalid dpi %v", dpi)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pngchunk: encode: %w", err)
	}

	data := buf.Bytes()
	if len(data) < physInsertOffset {
		return errors.New("pngchunk: encoded stream shorter than IHDR")
	}

	if _, err := w.Write(data[:physInsertOffset]); err != nil {
		return err
	}
	if _, err := w.Write(physChunk(geom.PixelsPerMeter(dpi))); err != nil {
		return err
	}
	_, err := w.Write(data[physInsertOffset:])
	return err
}

// physChunk builds a complete pHYs chunk: length, type, x/y pixels per meter,
// unit specifier 1 (meter), CRC over type+data.
func physChunk(ppm uint32) []byte {
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = 1
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}

// DPI scans an encoded PNG for its pHYs chunk and returns the horizontal DPI.
// Returns 0 when the chunk is absent or uses a non-meter unit.
func DPI(data []byte) (float64, error) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:8], pngSignature) {
		return 0, errors.New("pngchunk: not a PNG stream")
	}

	off := 8
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off:]))
		typ := string(data[off+4 : off+8])
		if off+8+length+4 > len(data) {
			return 0, errors.New("pngchunk: truncated chunk")
		}
		if typ == "pHYs" {
			if length != 9 {
				return 0, fmt.Errorf("pngchunk: pHYs length %d", length)
			}
			body := data[off+8 : off+17]
			if body[8] != 1 {
				return 0, nil
			}
			ppm := binary.BigEndian.Uint32(body[0:4])
			return float64(ppm) * 0.0254, nil
		}
		if typ == "IDAT" || typ == "IEND" {
			break
		}
		off += 8 + length + 4
	}
	return 0, nil
}
