package httpparser

import "math"

// startChunkSize seeds the length of the next chunk with its first hex digit.
func (p *Parser) startChunkSize(ch byte) Errno {
	digit := unhex[ch]
	if digit == -1 {
		return ErrInvalidChunkSize
	}

	p.contentLength = uint64(digit)
	p.state = eChunkSize

	return OK
}

// feedChunkSize processes a character after the first one of the chunk-size line. It
// returns whether the character must be processed once more in the new state.
func (p *Parser) feedChunkSize(ch byte) (reexecute bool, errno Errno) {
	switch ch {
	case cr:
		p.state = eChunkSizeAlmostDone
		return false, OK
	case lf:
		p.state = eChunkSizeAlmostDone
		return true, OK
	case ';', ' ':
		// chunk extensions are ignored
		p.state = eChunkParameters
		return false, OK
	}

	digit := unhex[ch]
	if digit == -1 {
		return false, ErrInvalidChunkSize
	}

	// test against a conservative limit for simplicity
	if (math.MaxUint64-16)/16 < p.contentLength {
		return false, ErrInvalidContentLength
	}

	p.contentLength = p.contentLength*16 + uint64(digit)

	return false, OK
}

func (p *Parser) feedChunkParameters(ch byte) (reexecute bool) {
	switch ch {
	case cr:
		p.state = eChunkSizeAlmostDone
	case lf:
		p.state = eChunkSizeAlmostDone
		return true
	}

	return false
}

// endChunkSize completes the chunk-size line. A zero-length chunk switches the parser
// into the trailer section, which is handled by the header states.
func (p *Parser) endChunkSize() {
	p.nread = 0

	if p.contentLength == 0 {
		p.flags |= FlagTrailing
		p.state = eHeaderFieldStart
	} else {
		p.state = eChunkData
	}
}

// consumeBody takes as many bytes of the body as available, but no more than remain.
// It returns the number of bytes taken.
func (p *Parser) consumeBody(available int) int {
	n := uint64(available)
	if p.contentLength < n {
		n = p.contentLength
	}

	p.contentLength -= n

	return int(n)
}
