package httpparser

import "math"

const (
	hdrConnection       = "connection"
	hdrProxyConnection  = "proxy-connection"
	hdrContentLength    = "content-length"
	hdrTransferEncoding = "transfer-encoding"
	hdrUpgrade          = "upgrade"

	tokChunked   = "chunked"
	tokKeepAlive = "keep-alive"
	tokClose     = "close"
	tokUpgrade   = "upgrade"
)

// UnknownLength is the ContentLength of a message carrying no Content-Length header.
const UnknownLength = math.MaxUint64

// matchLiteral advances the match of the literal by one character. It returns current
// while the literal is still being matched, done when the last character matched and
// mismatch otherwise. c must be lower-cased already.
func (p *Parser) matchLiteral(c byte, literal string, current, done, mismatch headerState) headerState {
	p.index++

	switch {
	case int(p.index) >= len(literal) || c != literal[p.index]:
		return mismatch
	case int(p.index) == len(literal)-1:
		return done
	default:
		return current
	}
}

// matchHeaderName feeds a single lower-cased header name character into the matcher.
// Once a character doesn't fit, the name is demoted to hGeneral until the next one.
func (p *Parser) matchHeaderName(c, ch byte) {
	switch h := p.headerState; h {
	case hC:
		p.index++
		p.headerState = hGeneral
		if c == 'o' {
			p.headerState = hCO
		}
	case hCO:
		p.index++
		p.headerState = hGeneral
		if c == 'n' {
			p.headerState = hCON
		}
	case hCON:
		p.index++
		switch c {
		case 'n':
			p.headerState = hMatchingConnection
		case 't':
			p.headerState = hMatchingContentLength
		default:
			p.headerState = hGeneral
		}
	case hMatchingConnection:
		p.headerState = p.matchLiteral(c, hdrConnection, h, hConnection, hGeneral)
	case hMatchingProxyConnection:
		p.headerState = p.matchLiteral(c, hdrProxyConnection, h, hConnection, hGeneral)
	case hMatchingContentLength:
		p.headerState = p.matchLiteral(c, hdrContentLength, h, hContentLength, hGeneral)
	case hMatchingTransferEncoding:
		p.headerState = p.matchLiteral(c, hdrTransferEncoding, h, hTransferEncoding, hGeneral)
	case hMatchingUpgrade:
		p.headerState = p.matchLiteral(c, hdrUpgrade, h, hUpgrade, hGeneral)
	case hConnection, hContentLength, hTransferEncoding, hUpgrade:
		// the name is complete, anything but trailing spaces makes it a different one
		if ch != ' ' {
			p.headerState = hGeneral
		}
	}
}

// startHeaderValue processes the first character of a header value.
func (p *Parser) startHeaderValue(ch byte) Errno {
	c := lower(ch)

	switch p.headerState {
	case hUpgrade:
		p.flags |= FlagUpgrade
		p.headerState = hGeneral
	case hTransferEncoding:
		// only the final coding of the last Transfer-Encoding header decides the framing
		p.flags = p.flags&^FlagChunked | FlagTransferEncoding
		if c == 'c' {
			p.headerState = hMatchingTransferEncodingChunked
		} else {
			p.headerState = hMatchingTransferEncodingToken
		}
	case hMatchingTransferEncodingTokenStart:
		// multi-value Transfer-Encoding folded onto the next line
	case hContentLength:
		if !isNum(ch) {
			return ErrInvalidContentLength
		}

		if p.flags.Has(FlagContentLength) {
			return ErrUnexpectedContentLength
		}

		p.flags |= FlagContentLength
		p.contentLength = uint64(ch - '0')
		p.headerState = hContentLengthNum
	case hContentLengthWS:
		// obsolete line folding after Content-Length digits. Any further digit
		// is rejected by matchHeaderValue.
	case hConnection:
		p.headerState = connectionToken(c, hMatchingConnectionToken)
	case hMatchingConnectionTokenStart:
		// multi-value Connection folded onto the next line
	default:
		p.headerState = hGeneral
	}

	return OK
}

func connectionToken(c byte, fallback headerState) headerState {
	switch c {
	case 'k':
		return hMatchingConnectionKeepAlive
	case 'c':
		return hMatchingConnectionClose
	case 'u':
		return hMatchingConnectionUpgrade
	default:
		return fallback
	}
}

func isStrictToken(c byte) bool {
	return tokens[c] != 0
}

// matchHeaderValue feeds a single header value character into the value matcher. It
// must not be called with hGeneral, as the caller skips such values on its own.
func (p *Parser) matchHeaderValue(h headerState, ch byte) (headerState, Errno) {
	c := lower(ch)

	switch h {
	case hContentLength, hContentLengthNum:
		if h == hContentLength && ch == ' ' {
			return h, OK
		}

		if ch == ' ' {
			return hContentLengthWS, OK
		}

		if !isNum(ch) {
			return hContentLengthNum, ErrInvalidContentLength
		}

		// test against a conservative limit for simplicity
		if (math.MaxUint64-10)/10 < p.contentLength {
			return hContentLengthNum, ErrInvalidContentLength
		}

		p.contentLength = p.contentLength*10 + uint64(ch-'0')
		return hContentLengthNum, OK
	case hContentLengthWS:
		if ch == ' ' {
			return h, OK
		}

		return h, ErrInvalidContentLength
	case hMatchingTransferEncodingTokenStart:
		switch {
		case c == 'c':
			return hMatchingTransferEncodingChunked, OK
		case isStrictToken(c):
			return hMatchingTransferEncodingToken, OK
		case c == ' ' || c == '\t':
			return h, OK
		default:
			return hGeneral, OK
		}
	case hMatchingTransferEncodingChunked:
		return p.matchLiteral(c, tokChunked, h, hTransferEncodingChunked, hMatchingTransferEncodingToken), OK
	case hMatchingTransferEncodingToken:
		if ch == ',' {
			p.index = 0
			return hMatchingTransferEncodingTokenStart, OK
		}

		return h, OK
	case hMatchingConnectionTokenStart:
		switch next := connectionToken(c, hGeneral); {
		case next != hGeneral:
			return next, OK
		case isStrictToken(c):
			return hMatchingConnectionToken, OK
		case c == ' ' || c == '\t':
			return h, OK
		default:
			return hGeneral, OK
		}
	case hMatchingConnectionKeepAlive:
		return p.matchLiteral(c, tokKeepAlive, h, hConnectionKeepAlive, hMatchingConnectionToken), OK
	case hMatchingConnectionClose:
		return p.matchLiteral(c, tokClose, h, hConnectionClose, hMatchingConnectionToken), OK
	case hMatchingConnectionUpgrade:
		return p.matchLiteral(c, tokUpgrade, h, hConnectionUpgrade, hMatchingConnectionToken), OK
	case hMatchingConnectionToken:
		if ch == ',' {
			p.index = 0
			return hMatchingConnectionTokenStart, OK
		}

		return h, OK
	case hTransferEncodingChunked:
		// chunked must be the final coding, anything after it except spaces breaks it
		if ch != ' ' {
			return hMatchingTransferEncodingToken, OK
		}

		return h, OK
	case hConnectionKeepAlive, hConnectionClose, hConnectionUpgrade:
		if ch == ',' {
			p.flags |= connectionFlag(h)
			p.index = 0
			return hMatchingConnectionTokenStart, OK
		}

		if ch != ' ' {
			return hMatchingConnectionToken, OK
		}

		return h, OK
	default:
		return hGeneral, OK
	}
}

func connectionFlag(h headerState) Flags {
	switch h {
	case hConnectionKeepAlive:
		return FlagConnectionKeepAlive
	case hConnectionClose:
		return FlagConnectionClose
	case hConnectionUpgrade:
		return FlagConnectionUpgrade
	default:
		return 0
	}
}

// finishHeaderValue commits the value tokens recognized in the last header line.
func (p *Parser) finishHeaderValue() {
	switch h := p.headerState; h {
	case hConnectionKeepAlive, hConnectionClose, hConnectionUpgrade:
		p.flags |= connectionFlag(h)
	case hTransferEncodingChunked:
		p.flags |= FlagChunked
	}
}
