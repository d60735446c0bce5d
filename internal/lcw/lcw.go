// Package lcw implements the Westwood LCW ("format 80") compression used
// by Red Alert for the MapPack and OverlayPack map sections.
//
// The command set is:
//
//	0cccpppp pppppppp           copy c+3 bytes from p bytes back
//	10cccccc                    copy the next c literal bytes (c == 0 ends the stream)
//	11cccccc pppppppp pppppppp  copy c+3 bytes from offset p
//	11111110 cccccccc cccccccc v fill c bytes with v
//	11111111 cccccccc cccccccc pppppppp pppppppp
//	                            copy c bytes from offset p
//
// Offsets of the two absolute commands are measured from the start of
// the destination buffer, unless the stream starts with a zero byte, in
// which case they are measured back from the write position.
package lcw

import "errors"

var (
	// ErrCorrupt is returned when the compressed stream ends early or
	// references data outside of the destination.
	ErrCorrupt = errors.New("lcw: corrupt input")

	// ErrOverflow is returned when a command would write past the end
	// of the destination buffer.
	ErrOverflow = errors.New("lcw: output overflow")
)

const (
	cmdEnd      = 0x80
	cmdFill     = 0xFE
	cmdLongCopy = 0xFF
	cmdMedCopy  = 0xC0

	maxLiteral   = 0x3F
	maxShortLen  = 10
	maxShortDist = 0xFFF
	maxMedLen    = 0x3D + 3
	maxLong      = 0xFFFF

	hashBits = 13
	maxChain = 64
)

// Compress encodes src with absolute offsets. Inputs longer than 64KiB
// can still be encoded, but only their first 64KiB can be referenced.
func Compress(src []byte) []byte {
	n := len(src)
	out := make([]byte, 0, n+n/maxLiteral+8)

	var head [1 << hashBits]int32
	for i := range head {
		head[i] = -1
	}
	prev := make([]int32, n)

	insert := func(i int) {
		if i+2 >= n {
			return
		}
		h := hash3(src[i:])
		prev[i] = head[h]
		head[h] = int32(i)
	}

	litStart := 0
	flush := func(end int) {
		for litStart < end {
			k := min(end-litStart, maxLiteral)
			out = append(out, cmdEnd|byte(k))
			out = append(out, src[litStart:litStart+k]...)
			litStart += k
		}
	}

	pos := 0
	for pos < n {
		run := 1
		for pos+run < n && run < maxLong && src[pos+run] == src[pos] {
			run++
		}

		bestLen, bestPos := 0, 0
		if pos+2 < n {
			limit := min(n-pos, maxLong)
			p := head[hash3(src[pos:])]
			for tries := 0; p >= 0 && tries < maxChain; tries++ {
				cand := int(p)
				if cand <= maxLong {
					l := 0
					for l < limit && src[cand+l] == src[pos+l] {
						l++
					}
					if l > bestLen || (l == bestLen && pos-cand < pos-bestPos) {
						bestLen, bestPos = l, cand
					}
				}
				p = prev[cand]
			}
			if bestLen < 4 && pos-bestPos > maxShortDist {
				bestLen = 0
			}
		}

		switch {
		case run >= 4 && run >= bestLen:
			flush(pos)
			out = append(out, cmdFill, byte(run), byte(run>>8), src[pos])
			for i := pos; i < pos+run; i++ {
				insert(i)
			}
			pos += run
			litStart = pos
		case bestLen >= 3:
			flush(pos)
			out = appendCopy(out, pos, bestPos, bestLen)
			for i := pos; i < pos+bestLen; i++ {
				insert(i)
			}
			pos += bestLen
			litStart = pos
		default:
			insert(pos)
			pos++
		}
	}
	flush(n)

	return append(out, cmdEnd)
}

func appendCopy(out []byte, pos, from, length int) []byte {
	dist := pos - from
	switch {
	case length <= maxShortLen && dist <= maxShortDist:
		return append(out, byte((length-3)<<4)|byte(dist>>8), byte(dist))
	case length <= maxMedLen:
		return append(out, cmdMedCopy|byte(length-3), byte(from), byte(from>>8))
	default:
		return append(out, cmdLongCopy, byte(length), byte(length>>8), byte(from), byte(from>>8))
	}
}

func hash3(b []byte) uint32 {
	v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	return (v * 2654435761) >> (32 - hashBits)
}

// Decompress decodes the stream starting at src[*readPos] into dst,
// beginning at dstOffset, until the end marker is read or dst is full.
// It advances *readPos past the consumed input and returns the number
// of bytes written.
func Decompress(src []byte, readPos *int, dst []byte, dstOffset int) (int, error) {
	rp := *readPos
	d := dstOffset
	defer func() { *readPos = rp }()

	if dstOffset < 0 || dstOffset > len(dst) {
		return 0, ErrOverflow
	}

	relative := false
	if rp < len(src) && src[rp] == 0 {
		relative = true
		rp++
	}

	for d < len(dst) {
		if rp >= len(src) {
			return d - dstOffset, ErrCorrupt
		}
		cmd := src[rp]
		rp++

		switch {
		case cmd&0x80 == 0:
			if rp >= len(src) {
				return d - dstOffset, ErrCorrupt
			}
			count := int(cmd>>4) + 3
			from := d - (int(cmd&0x0F)<<8 | int(src[rp]))
			rp++
			if err := copyBack(dst, from, d, count, dstOffset); err != nil {
				return d - dstOffset, err
			}
			d += count

		case cmd == cmdEnd:
			return d - dstOffset, nil

		case cmd&0x40 == 0:
			count := int(cmd & maxLiteral)
			if rp+count > len(src) {
				return d - dstOffset, ErrCorrupt
			}
			if d+count > len(dst) {
				return d - dstOffset, ErrOverflow
			}
			copy(dst[d:], src[rp:rp+count])
			rp += count
			d += count

		case cmd == cmdFill:
			if rp+3 > len(src) {
				return d - dstOffset, ErrCorrupt
			}
			count := int(src[rp]) | int(src[rp+1])<<8
			val := src[rp+2]
			rp += 3
			if d+count > len(dst) {
				return d - dstOffset, ErrOverflow
			}
			for i := 0; i < count; i++ {
				dst[d+i] = val
			}
			d += count

		default:
			var count, offset int
			if cmd == cmdLongCopy {
				if rp+4 > len(src) {
					return d - dstOffset, ErrCorrupt
				}
				count = int(src[rp]) | int(src[rp+1])<<8
				offset = int(src[rp+2]) | int(src[rp+3])<<8
				rp += 4
			} else {
				if rp+2 > len(src) {
					return d - dstOffset, ErrCorrupt
				}
				count = int(cmd&maxLiteral) + 3
				offset = int(src[rp]) | int(src[rp+1])<<8
				rp += 2
			}
			from := dstOffset + offset
			if relative {
				from = d - offset
			}
			if err := copyBack(dst, from, d, count, dstOffset); err != nil {
				return d - dstOffset, err
			}
			d += count
		}
	}

	if rp < len(src) && src[rp] == cmdEnd {
		rp++
	}
	return d - dstOffset, nil
}

// copyBack copies byte by byte so that overlapping runs repeat.
func copyBack(dst []byte, from, to, count, base int) error {
	if from < base || from >= to && count > 0 {
		return ErrCorrupt
	}
	if to+count > len(dst) {
		return ErrOverflow
	}
	for i := 0; i < count; i++ {
		dst[to+i] = dst[from+i]
	}
	return nil
}
