package codec

// Minimal MSB-first bit stream helpers for the packed state format.

type bitWriter struct {
	buf   []byte
	nbits uint
}

// write appends the low `bits` bits of v, most significant first.
func (w *bitWriter) write(v uint64, bits uint) {
	for i := int(bits) - 1; i >= 0; i-- {
		if w.nbits%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 1 << (7 - w.nbits%8)
		}
		w.nbits++
	}
}

type bitReader struct {
	buf []byte
	pos uint // bit offset
}

// read consumes `bits` bits, most significant first. ok is false when the
// stream is exhausted.
func (r *bitReader) read(bits uint) (v uint64, ok bool) {
	if r.pos+bits > uint(len(r.buf))*8 {
		return 0, false
	}
	for i := uint(0); i < bits; i++ {
		byteIdx := r.pos / 8
		bit := r.buf[byteIdx] >> (7 - r.pos%8) & 1
		v = v<<1 | uint64(bit)
		r.pos++
	}
	return v, true
}
