package httpparser

import "github.com/indigo-web/httpparser/http/method"

var noSettings Settings

// Execute feeds the next piece of the stream into the parser. It returns the number of
// bytes consumed, which is less than len(data) if an error occurred, the parser got
// paused or the connection is being upgraded (see Upgrade). In the first two cases the
// error is returned as well. A paused parser returns ErrPaused and consumes nothing
// until resumed.
//
// Empty data means the transport reached EOF. It completes a message whose body is
// delimited by the end of the connection, and is an error in the middle of any other
// message.
//
// The parser is unusable after any error except ErrPaused, until reinitialized.
func (p *Parser) Execute(settings *Settings, data []byte) (int, error) {
	if p.errno != OK {
		return 0, p.Err()
	}

	if settings == nil {
		settings = &noSettings
	}

	if len(data) == 0 {
		return p.eof(settings)
	}

	var (
		strict  = p.cfg.Strict
		lenient = p.cfg.Lenient.Headers

		headerFieldMark, headerValueMark, urlMark, bodyMark, statusMark = noMark, noMark,
			noMark, noMark, noMark
	)

	// the field started in one of the previous pieces continues at the beginning of this one
	switch p.state {
	case eHeaderField:
		headerFieldMark = 0
	case eHeaderValue:
		headerValueMark = 0
	case eReqSchema, eReqSchemaSlash, eReqSchemaSlashSlash, eReqServerStart, eReqServer,
		eReqServerWithAt, eReqPath, eReqQueryStringStart, eReqQueryString,
		eReqFragmentStart, eReqFragment:
		urlMark = 0
	case eResStatus:
		statusMark = 0
	}

	for i := 0; i < len(data); i++ {
		ch := data[i]

		if p.state.parsingHeader() && !p.countHeader() {
			return p.fail(ErrHeaderOverflow, i)
		}

		// every iteration processes the same character. Leaving the loop means
		// the character is consumed.
	reexecute:
		for {
			switch p.state {
			case eDead:
				// the connection must be closed, but extra line breaks are tolerated
				if ch == cr || ch == lf {
					break
				}

				return p.fail(ErrClosedConnection, i)
			case eStartReqOrRes:
				if ch == cr || ch == lf {
					break
				}

				p.resetMessage()

				if ch != 'H' {
					p.typ = Request
					p.state = eStartReq
					continue reexecute
				}

				p.state = eResOrRespH
				if !p.notify(settings.OnMessageBegin, ErrCBMessageBegin) {
					return i + 1, p.Err()
				}
			case eResOrRespH:
				if ch == 'T' {
					p.typ = Response
					p.state = eResHT
					break
				}

				if ch != 'E' {
					return p.fail(ErrInvalidConstant, i)
				}

				p.typ = Request
				p.method = method.HEAD
				p.index = 2
				p.state = eReqMethod
			case eStartRes:
				if ch == cr || ch == lf {
					break
				}

				p.resetMessage()

				if ch != 'H' {
					return p.fail(ErrInvalidConstant, i)
				}

				p.state = eResH
				if !p.notify(settings.OnMessageBegin, ErrCBMessageBegin) {
					return i + 1, p.Err()
				}
			case eResH, eResHT, eResHTT:
				if strict && ch != "HTTP"[p.state-eResH+1] {
					return p.fail(ErrStrict, i)
				}

				p.state++
			case eResHTTP:
				if strict && ch != '/' {
					return p.fail(ErrStrict, i)
				}

				p.state = eResHTTPMajor
			case eResHTTPMajor, eReqHTTPMajor:
				if !isNum(ch) {
					return p.fail(ErrInvalidVersion, i)
				}

				p.major = uint16(ch - '0')
				p.state++
			case eResHTTPDot, eReqHTTPDot:
				if ch != '.' {
					return p.fail(ErrInvalidVersion, i)
				}

				p.state++
			case eResHTTPMinor, eReqHTTPMinor:
				if !isNum(ch) {
					return p.fail(ErrInvalidVersion, i)
				}

				p.minor = uint16(ch - '0')
				p.state++
			case eResHTTPEnd:
				if ch != ' ' {
					return p.fail(ErrInvalidVersion, i)
				}

				p.state = eResFirstStatusCode
			case eResFirstStatusCode:
				if isNum(ch) {
					p.statusCode = uint16(ch - '0')
					p.state = eResStatusCode
					break
				}

				if ch != ' ' {
					return p.fail(ErrInvalidStatus, i)
				}
			case eResStatusCode:
				if isNum(ch) {
					p.statusCode = p.statusCode*10 + uint16(ch-'0')
					if p.statusCode > 999 {
						return p.fail(ErrInvalidStatus, i)
					}

					break
				}

				switch ch {
				case ' ':
					p.state = eResStatusStart
				case cr, lf:
					p.state = eResStatusStart
					continue reexecute
				default:
					return p.fail(ErrInvalidStatus, i)
				}
			case eResStatusStart:
				if statusMark == noMark {
					statusMark = i
				}

				p.state = eResStatus
				p.index = 0

				if ch == cr || ch == lf {
					continue reexecute
				}
			case eResStatus:
				if ch != cr && ch != lf {
					break
				}

				if ch == cr {
					p.state = eResLineAlmostDone
				} else {
					p.state = eHeaderFieldStart
				}

				if !p.flush(settings.OnStatus, ErrCBStatus, &statusMark, data, i) {
					return i + 1, p.Err()
				}
			case eResLineAlmostDone:
				if strict && ch != lf {
					return p.fail(ErrStrict, i)
				}

				p.state = eHeaderFieldStart
			case eStartReq:
				if ch == cr || ch == lf {
					break
				}

				p.resetMessage()

				if p.method = firstMethod(ch); p.method == method.Unknown {
					return p.fail(ErrInvalidMethod, i)
				}

				p.index = 1
				p.state = eReqMethod
				if !p.notify(settings.OnMessageBegin, ErrCBMessageBegin) {
					return i + 1, p.Err()
				}
			case eReqMethod:
				if ch == 0 {
					return p.fail(ErrInvalidMethod, i)
				}

				name := p.method.String()

				switch {
				case ch == ' ' && int(p.index) == len(name):
					p.state = eReqSpacesBeforeURL
				case int(p.index) < len(name) && ch == name[p.index]:
				case (ch >= 'A' && ch <= 'Z') || ch == '-':
					if p.method = nextMethod(p.method, p.index, ch); p.method == method.Unknown {
						return p.fail(ErrInvalidMethod, i)
					}
				default:
					return p.fail(ErrInvalidMethod, i)
				}

				p.index++
			case eReqSpacesBeforeURL:
				if ch == ' ' {
					break
				}

				if urlMark == noMark {
					urlMark = i
				}

				if p.method == method.CONNECT {
					// authority-form only
					p.state = eReqServerStart
				}

				if p.state = parseURLChar(p.state, ch, strict); p.state == eDead {
					return p.fail(ErrInvalidURL, i)
				}
			case eReqSchema, eReqSchemaSlash, eReqSchemaSlashSlash, eReqServerStart:
				if p.state = parseURLChar(p.state, ch, strict); p.state == eDead {
					return p.fail(ErrInvalidURL, i)
				}
			case eReqServer, eReqServerWithAt, eReqPath, eReqQueryStringStart,
				eReqQueryString, eReqFragmentStart, eReqFragment:
				if ch != ' ' && ch != cr && ch != lf {
					if p.state = parseURLChar(p.state, ch, strict); p.state == eDead {
						return p.fail(ErrInvalidURL, i)
					}

					break
				}

				switch ch {
				case ' ':
					p.state = eReqHTTPStart
				case cr:
					// HTTP/0.9 request line carries no version
					p.major, p.minor = 0, 9
					p.state = eReqLineAlmostDone
				case lf:
					p.major, p.minor = 0, 9
					p.state = eHeaderFieldStart
				}

				if !p.flush(settings.OnURL, ErrCBURL, &urlMark, data, i) {
					return i + 1, p.Err()
				}
			case eReqHTTPStart:
				switch {
				case ch == ' ':
				case ch == 'H':
					p.state = eReqHTTPH
				case ch == 'I' && p.method == method.SOURCE:
					// ICE/x.y
					p.state = eReqHTTPI
				default:
					return p.fail(ErrInvalidConstant, i)
				}
			case eReqHTTPH, eReqHTTPHT, eReqHTTPHTT:
				if strict && ch != "HTTP"[p.state-eReqHTTPH+1] {
					return p.fail(ErrStrict, i)
				}

				p.state++
			case eReqHTTPI:
				if strict && ch != 'C' {
					return p.fail(ErrStrict, i)
				}

				p.state = eReqHTTPIC
			case eReqHTTPIC:
				if strict && ch != 'E' {
					return p.fail(ErrStrict, i)
				}

				p.state = eReqHTTPHTTP
			case eReqHTTPHTTP:
				if strict && ch != '/' {
					return p.fail(ErrStrict, i)
				}

				p.state = eReqHTTPMajor
			case eReqHTTPEnd:
				switch ch {
				case cr:
					p.state = eReqLineAlmostDone
				case lf:
					p.state = eHeaderFieldStart
				default:
					return p.fail(ErrInvalidVersion, i)
				}
			case eReqLineAlmostDone:
				if ch != lf {
					return p.fail(ErrLFExpected, i)
				}

				p.state = eHeaderFieldStart
			case eHeaderFieldStart:
				if ch == cr || ch == lf {
					p.state = eHeadersAlmostDone
					if ch == lf {
						continue reexecute
					}

					break
				}

				c := token(ch, strict)
				if c == 0 {
					return p.fail(ErrInvalidHeaderToken, i)
				}

				if headerFieldMark == noMark {
					headerFieldMark = i
				}

				p.index = 0
				p.state = eHeaderField

				switch c {
				case 'c':
					p.headerState = hC
				case 'p':
					p.headerState = hMatchingProxyConnection
				case 't':
					p.headerState = hMatchingTransferEncoding
				case 'u':
					p.headerState = hMatchingUpgrade
				default:
					p.headerState = hGeneral
				}
			case eHeaderField:
				for {
					c := token(ch, strict)
					if c == 0 || i+1 == len(data) {
						if c != 0 {
							p.matchHeaderName(c, ch)
						}

						break
					}

					p.matchHeaderName(c, ch)
					i++
					ch = data[i]

					if !p.countHeader() {
						return p.fail(ErrHeaderOverflow, i)
					}
				}

				if token(ch, strict) != 0 {
					// the name continues in the next piece
					break
				}

				if ch != ':' {
					return p.fail(ErrInvalidHeaderToken, i)
				}

				p.state = eHeaderValueDiscardWS
				if !p.flush(settings.OnHeaderField, ErrCBHeaderField, &headerFieldMark, data, i) {
					return i + 1, p.Err()
				}
			case eHeaderValueDiscardWS:
				switch ch {
				case ' ', '\t':
				case cr:
					p.state = eHeaderValueDiscardWSAlmostDone
				case lf:
					p.state = eHeaderValueDiscardLWS
				default:
					p.state = eHeaderValueStart
					continue reexecute
				}
			case eHeaderValueDiscardWSAlmostDone:
				if strict && ch != lf {
					return p.fail(ErrStrict, i)
				}

				p.state = eHeaderValueDiscardLWS
			case eHeaderValueDiscardLWS:
				if ch == ' ' || ch == '\t' {
					p.state = eHeaderValueDiscardWS
					break
				}

				if p.headerState == hContentLength {
					// empty Content-Length
					return p.fail(ErrInvalidContentLength, i)
				}

				p.finishHeaderValue()

				// the value is empty
				if headerValueMark == noMark {
					headerValueMark = i
				}

				p.state = eHeaderFieldStart
				if !p.flush(settings.OnHeaderValue, ErrCBHeaderValue, &headerValueMark, data, i) {
					return i, p.Err()
				}

				continue reexecute
			case eHeaderValueStart:
				if headerValueMark == noMark {
					headerValueMark = i
				}

				p.state = eHeaderValue
				p.index = 0

				if errno := p.startHeaderValue(ch); errno != OK {
					return p.fail(errno, i)
				}
			case eHeaderValue:
				h := p.headerState

				for ch != cr && ch != lf {
					if !lenient && !isHeaderChar(ch) {
						p.headerState = h
						return p.fail(ErrInvalidHeaderToken, i)
					}

					if h != hGeneral {
						var errno Errno
						if h, errno = p.matchHeaderValue(h, ch); errno != OK {
							p.headerState = h
							return p.fail(errno, i)
						}
					}

					if i+1 == len(data) {
						break
					}

					i++
					ch = data[i]

					if !p.countHeader() {
						p.headerState = h
						return p.fail(ErrHeaderOverflow, i)
					}
				}

				p.headerState = h

				if ch != cr && ch != lf {
					// the value continues in the next piece
					break
				}

				p.state = eHeaderAlmostDone
				if !p.flush(settings.OnHeaderValue, ErrCBHeaderValue, &headerValueMark, data, i) {
					if ch == lf {
						return i, p.Err()
					}

					return i + 1, p.Err()
				}

				if ch == lf {
					continue reexecute
				}
			case eHeaderAlmostDone:
				if ch != lf {
					return p.fail(ErrLFExpected, i)
				}

				p.state = eHeaderValueLWS
			case eHeaderValueLWS:
				if ch == ' ' || ch == '\t' {
					// obsolete line folding
					if p.headerState == hContentLengthNum {
						p.headerState = hContentLengthWS
					}

					p.state = eHeaderValueStart
					continue reexecute
				}

				p.finishHeaderValue()
				p.state = eHeaderFieldStart
				continue reexecute
			case eHeadersAlmostDone:
				if strict && ch != lf {
					return p.fail(ErrStrict, i)
				}

				if p.flags.Has(FlagTrailing) {
					// the trailer section of a chunked body is over
					p.state = eMessageDone
					if !p.notify(settings.OnChunkComplete, ErrCBChunkComplete) {
						return i, p.Err()
					}

					continue reexecute
				}

				if p.flags.Has(FlagTransferEncoding) && p.flags.Has(FlagContentLength) {
					if p.flags.Has(FlagChunked) {
						if !p.cfg.Lenient.ChunkedLength {
							return p.fail(ErrUnexpectedContentLength, i)
						}
					} else if !lenient {
						return p.fail(ErrUnexpectedContentLength, i)
					}
				}

				p.state = eHeadersDone

				// set before OnHeadersComplete, so the callback sees it
				if p.flags.Has(FlagUpgrade) && p.flags.Has(FlagConnectionUpgrade) {
					// responses announcing an upgrade are informational unless it's 101
					p.upgrade = p.typ == Request || p.statusCode == 101
				} else {
					p.upgrade = p.method == method.CONNECT
				}

				if !p.headersComplete(settings.OnHeadersComplete) {
					return i, p.Err()
				}

				continue reexecute
			case eHeadersDone:
				if strict && ch != lf {
					return p.fail(ErrStrict, i)
				}

				p.nread = 0

				hasBody := p.flags.Has(FlagChunked) ||
					(p.contentLength > 0 && p.contentLength != UnknownLength)

				if p.upgrade && (p.method == method.CONNECT || p.flags.Has(FlagSkipBody) || !hasBody) {
					// the rest of the data belongs to another protocol
					p.state = p.newMessage()
					if !p.notify(settings.OnMessageComplete, ErrCBMessageComplete) {
						return i + 1, p.Err()
					}

					return i + 1, nil
				}

				state, errno := p.bodyState()
				if errno != OK {
					return p.fail(errno, i)
				}

				if p.state = state; p.state == eMessageDone {
					// no body
					continue reexecute
				}
			case eBodyIdentity:
				if bodyMark == noMark {
					bodyMark = i
				}

				i += p.consumeBody(len(data)-i) - 1

				if p.contentLength == 0 {
					p.state = eMessageDone
					// OnBody observes BodyIsFinal() in this case
					if !p.flush(settings.OnBody, ErrCBBody, &bodyMark, data, i+1) {
						return i, p.Err()
					}

					continue reexecute
				}
			case eBodyIdentityEOF:
				if bodyMark == noMark {
					bodyMark = i
				}

				i = len(data) - 1
			case eMessageDone:
				p.state = p.newMessage()
				if !p.notify(settings.OnMessageComplete, ErrCBMessageComplete) {
					return i + 1, p.Err()
				}

				if p.upgrade {
					return i + 1, nil
				}
			case eChunkSizeStart:
				if errno := p.startChunkSize(ch); errno != OK {
					return p.fail(errno, i)
				}
			case eChunkSize:
				again, errno := p.feedChunkSize(ch)
				if errno != OK {
					return p.fail(errno, i)
				}

				if again {
					continue reexecute
				}
			case eChunkParameters:
				if p.feedChunkParameters(ch) {
					continue reexecute
				}
			case eChunkSizeAlmostDone:
				if strict && ch != lf {
					return p.fail(ErrStrict, i)
				}

				p.endChunkSize()
				if !p.notify(settings.OnChunkHeader, ErrCBChunkHeader) {
					return i + 1, p.Err()
				}
			case eChunkData:
				if bodyMark == noMark {
					bodyMark = i
				}

				i += p.consumeBody(len(data)-i) - 1

				if p.contentLength == 0 {
					p.state = eChunkDataAlmostDone
				}
			case eChunkDataAlmostDone:
				if strict && ch != cr && ch != lf {
					return p.fail(ErrStrict, i)
				}

				p.state = eChunkDataDone
				if ch == lf {
					if !p.flush(settings.OnBody, ErrCBBody, &bodyMark, data, i) {
						return i, p.Err()
					}

					continue reexecute
				}

				if !p.flush(settings.OnBody, ErrCBBody, &bodyMark, data, i) {
					return i + 1, p.Err()
				}
			case eChunkDataDone:
				if strict && ch != lf {
					return p.fail(ErrStrict, i)
				}

				p.nread = 0
				p.state = eChunkSizeStart
				if !p.notify(settings.OnChunkComplete, ErrCBChunkComplete) {
					return i + 1, p.Err()
				}
			default:
				return p.fail(ErrInvalidInternalState, i)
			}

			break
		}
	}

	// at most one mark may be set at this point
	n := len(data)
	if !p.flush(settings.OnHeaderField, ErrCBHeaderField, &headerFieldMark, data, n) ||
		!p.flush(settings.OnHeaderValue, ErrCBHeaderValue, &headerValueMark, data, n) ||
		!p.flush(settings.OnURL, ErrCBURL, &urlMark, data, n) ||
		!p.flush(settings.OnBody, ErrCBBody, &bodyMark, data, n) ||
		!p.flush(settings.OnStatus, ErrCBStatus, &statusMark, data, n) {
		return n, p.Err()
	}

	return n, nil
}

// eof handles the end of the stream.
func (p *Parser) eof(settings *Settings) (int, error) {
	switch p.state {
	case eBodyIdentityEOF:
		p.state = eDead
		if !p.notify(settings.OnMessageComplete, ErrCBMessageComplete) {
			return 0, p.Err()
		}

		return 0, nil
	case eDead, eStartReqOrRes, eStartReq, eStartRes:
		return 0, nil
	default:
		return p.fail(ErrInvalidEOFState, 1)
	}
}
