package buffer

import (
	"bytes"
	"fmt"
)

const (
	sauceRecordSize  = 128
	sauceCommentSize = 64
	sauceID          = "SAUCE"
	sauceVersion     = "00"
	sauceCommentID   = "COMNT"
)

// SAUCE DataType values relevant to this engine.
const (
	SauceDataTypeNone      byte = 0
	SauceDataTypeCharacter byte = 1
	SauceDataTypeBinary    byte = 5
	SauceDataTypeXBin      byte = 6
)

// ANSiFlags bit layout used when writing Character-type records.
const (
	flagIceColors     = 1 << 0
	flagLetterSpacing = 1 << 1
	flagAspectRatio   = 1 << 3
)

// ReadSauce locates and parses a trailing SAUCE record (plus any comment
// block) in data. ok is false if no SAUCE record is present; that is not
// an error, just absence.
func ReadSauce(data []byte) (rec SauceData, rest []byte, ok bool) {
	if len(data) < sauceRecordSize {
		return SauceData{}, data, false
	}
	recStart := len(data) - sauceRecordSize
	if !bytes.HasPrefix(data[recStart:], []byte(sauceID)) {
		return SauceData{}, data, false
	}
	raw := data[recStart:]

	rec.Title = trimSauceField(raw[7:42])
	rec.Author = trimSauceField(raw[42:62])
	rec.Group = trimSauceField(raw[62:82])
	rec.DataType = raw[94]
	rec.FileType = raw[95]
	rec.TInfo1 = le16(raw[96:98])
	rec.TInfo2 = le16(raw[98:100])
	rec.TInfo3 = le16(raw[100:102])
	rec.TInfo4 = le16(raw[102:104])
	numComments := int(raw[104])
	flags := raw[105]
	rec.Flags.IceColors = flags&flagIceColors != 0
	if flags&flagLetterSpacing != 0 {
		rec.Flags.LetterSpacing = LetterSpacingNinePixel
	}
	if flags&flagAspectRatio != 0 {
		rec.Flags.AspectRatio = AspectRatioLegacyDevice
	}
	rec.FontName = trimSauceField(raw[106:128])

	cut := recStart
	if numComments > 0 {
		blockSize := 5 + numComments*sauceCommentSize
		blockStart := recStart - blockSize
		if blockStart >= 0 && bytes.HasPrefix(data[blockStart:], []byte(sauceCommentID)) {
			for i := 0; i < numComments; i++ {
				start := blockStart + 5 + i*sauceCommentSize
				rec.Comments = append(rec.Comments, trimSauceField(data[start:start+sauceCommentSize]))
			}
			cut = blockStart
		}
	}

	// The EOF marker (0x1A) immediately precedes the SAUCE/comment block.
	if cut > 0 && data[cut-1] == 0x1A {
		cut--
	}
	return rec, data[:cut], true
}

// WriteSauce appends an EOF marker, optional comment block, and the SAUCE
// record to content, populated from the buffer's current state per §6.
func WriteSauce(content []byte, rec SauceData, buf *Buffer) []byte {
	out := append([]byte{}, content...)
	out = append(out, 0x1A)

	if len(rec.Comments) > 0 {
		out = append(out, []byte(sauceCommentID)...)
		for _, c := range rec.Comments {
			out = append(out, padSauceField(c, sauceCommentSize)...)
		}
	}

	rawRec := make([]byte, sauceRecordSize)
	copy(rawRec[0:5], sauceID)
	copy(rawRec[5:7], sauceVersion)
	copy(rawRec[7:42], padSauceField(rec.Title, 35))
	copy(rawRec[42:62], padSauceField(rec.Author, 20))
	copy(rawRec[62:82], padSauceField(rec.Group, 20))
	copy(rawRec[82:90], padSauceField(rec.DataDateOrToday(), 8))
	putLE32(rawRec[90:94], uint32(len(content)))
	rawRec[94] = rec.DataType
	rawRec[95] = rec.FileType

	tInfo1, tInfo2 := rec.TInfo1, rec.TInfo2
	flags := byte(0)
	if buf != nil {
		tInfo1 = uint16(buf.Size.Width)
		tInfo2 = uint16(buf.Size.Height)
		if buf.IceMode == IceIce {
			flags |= flagIceColors
		}
		if buf.UseLetterSpacing {
			flags |= flagLetterSpacing
		}
		if buf.UseAspectRatio {
			flags |= flagAspectRatio
		}
	}
	putLE16(rawRec[96:98], tInfo1)
	putLE16(rawRec[98:100], tInfo2)
	putLE16(rawRec[100:102], rec.TInfo3)
	putLE16(rawRec[102:104], rec.TInfo4)
	rawRec[104] = byte(len(rec.Comments))
	rawRec[105] = flags

	fontName := rec.FontName
	if fontName == "" && buf != nil {
		fontName = buf.SauceData.FontName
	}
	copy(rawRec[106:128], padSauceField(fontName, 22))

	out = append(out, rawRec...)
	return out
}

// DataDateOrToday returns the date string WriteSauce stores: always the
// placeholder "00000000". SauceData has no date field and ReadSauce does
// not keep the date of a record it reads, so dates are not round-tripped.
func (s SauceData) DataDateOrToday() string {
	return "00000000"
}

func trimSauceField(b []byte) string {
	return string(bytes.TrimRight(b, " \x00"))
}

func padSauceField(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, []byte(s))
	if len(s) > n {
		copy(b, []byte(s)[:n])
	}
	return b
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// FontOptLookupName returns the SAUCE font name a given buffer font-table
// slot should be written under, used by format writers.
func FontOptLookupName(b *Buffer, slot uint) (string, error) {
	f, ok := b.FontTable[slot]
	if !ok {
		return "", fmt.Errorf("buffer: no font loaded in slot %d", slot)
	}
	return f.Name, nil
}
