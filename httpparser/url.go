package httpparser

// Field is a component of a URL.
type Field uint8

const (
	FieldSchema Field = iota
	FieldHost
	FieldPort
	FieldPath
	FieldQuery
	FieldFragment
	FieldUserinfo

	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldSchema:
		return "schema"
	case FieldHost:
		return "host"
	case FieldPort:
		return "port"
	case FieldPath:
		return "path"
	case FieldQuery:
		return "query"
	case FieldFragment:
		return "fragment"
	case FieldUserinfo:
		return "userinfo"
	default:
		return "unknown"
	}
}

// Span locates a URL component inside the parsed buffer.
type Span struct {
	Off, Len int
}

// URL is the result of ParseURL. It doesn't copy anything, but only references the
// original buffer by offsets.
type URL struct {
	// FieldSet is a bitmask of the components found, 1<<Field each.
	FieldSet uint8
	// Port is the numeric value of the FieldPort component, if one is present.
	Port   uint16
	Fields [fieldCount]Span
}

// Has reports whether the component is present.
func (u *URL) Has(f Field) bool {
	return u.FieldSet&(1<<f) != 0
}

// Get returns the component's bytes from the buffer the URL was parsed from, or nil if
// the component is absent.
func (u *URL) Get(buf []byte, f Field) []byte {
	if !u.Has(f) {
		return nil
	}

	span := u.Fields[f]
	return buf[span.Off : span.Off+span.Len]
}

func (u *URL) set(f Field, off int) {
	u.Fields[f] = Span{Off: off, Len: 1}
	u.FieldSet |= 1 << f
}

// parseURLChar is the transition function of the URL sub-machine. It returns eDead on
// any character, which can't continue the URL in the current state.
func parseURLChar(s parserState, ch byte, strict bool) parserState {
	if ch == ' ' || ch == cr || ch == lf {
		return eDead
	}

	if strict && (ch == '\t' || ch == '\f') {
		return eDead
	}

	switch s {
	case eReqSpacesBeforeURL:
		// proxied requests are followed by a scheme of an absolute URI (alpha), all the
		// others must be followed by a path, or an asterisk for OPTIONS.
		if ch == '/' || ch == '*' {
			return eReqPath
		}

		if isAlpha(ch) {
			return eReqSchema
		}
	case eReqSchema:
		if isAlpha(ch) {
			return s
		}

		if ch == ':' {
			return eReqSchemaSlash
		}
	case eReqSchemaSlash:
		if ch == '/' {
			return eReqSchemaSlashSlash
		}
	case eReqSchemaSlashSlash:
		if ch == '/' {
			return eReqServerStart
		}
	case eReqServerWithAt, eReqServerStart, eReqServer:
		if s == eReqServerWithAt && ch == '@' {
			return eDead
		}

		switch ch {
		case '/':
			return eReqPath
		case '?':
			return eReqQueryStringStart
		case '@':
			return eReqServerWithAt
		}

		if isUserinfoChar(ch) || ch == '[' || ch == ']' {
			return eReqServer
		}
	case eReqPath:
		if isURLChar(ch, strict) {
			return s
		}

		switch ch {
		case '?':
			return eReqQueryStringStart
		case '#':
			return eReqFragmentStart
		}
	case eReqQueryStringStart, eReqQueryString:
		if isURLChar(ch, strict) {
			return eReqQueryString
		}

		switch ch {
		case '?':
			// allow extra '?' in query string
			return eReqQueryString
		case '#':
			return eReqFragmentStart
		}
	case eReqFragmentStart:
		if isURLChar(ch, strict) {
			return eReqFragment
		}

		switch ch {
		case '?':
			return eReqFragment
		case '#':
			return s
		}
	case eReqFragment:
		if isURLChar(ch, strict) {
			return s
		}

		switch ch {
		case '?', '#':
			return s
		}
	}

	return eDead
}

// ParseURL splits the URL into components. With isConnect set, the buffer is treated as
// a CONNECT request target, which must consist of exactly host and port. The returned
// URL is valid only together with buf.
func ParseURL(buf []byte, isConnect bool) (u URL, err error) {
	return parseURL(buf, isConnect, false)
}

func parseURL(buf []byte, isConnect, strict bool) (u URL, err error) {
	if len(buf) == 0 {
		return u, ErrInvalidURL
	}

	s := eReqSpacesBeforeURL
	if isConnect {
		s = eReqServerStart
	}

	var (
		foundAt bool
		prev    = fieldCount
	)

	for i, ch := range buf {
		next := parseURLChar(s, ch, strict)

		var f Field
		switch next {
		case eDead:
			return u, urlStateErrno(s)
		case eReqSchemaSlash, eReqSchemaSlashSlash, eReqServerStart,
			eReqQueryStringStart, eReqFragmentStart:
			// delimiters
			s = next
			continue
		case eReqSchema:
			f = FieldSchema
		case eReqServerWithAt:
			foundAt = true
			f = FieldHost
		case eReqServer:
			f = FieldHost
		case eReqPath:
			f = FieldPath
		case eReqQueryString:
			f = FieldQuery
		case eReqFragment:
			f = FieldFragment
		default:
			return u, ErrInvalidInternalState
		}

		s = next

		if f == prev {
			u.Fields[f].Len++
			continue
		}

		u.set(f, i)
		prev = f
	}

	// parsing http:///toto will fail
	if u.Has(FieldSchema) && !u.Has(FieldHost) {
		return u, ErrInvalidHost
	}

	if u.Has(FieldHost) {
		if err = parseHost(buf, &u, foundAt, strict); err != nil {
			return u, err
		}
	}

	if isConnect && u.FieldSet != (1<<FieldHost|1<<FieldPort) {
		return u, ErrInvalidURL
	}

	if u.Has(FieldPort) {
		var port uint32
		// the host sub-machine has already ensured the port consists of digits only
		for _, ch := range u.Get(buf, FieldPort) {
			port = port*10 + uint32(ch-'0')
			if port > 0xffff {
				return u, ErrInvalidPort
			}
		}

		u.Port = uint16(port)
	}

	return u, nil
}

func urlStateErrno(s parserState) Errno {
	switch s {
	case eReqServerStart, eReqServer, eReqServerWithAt:
		return ErrInvalidHost
	case eReqPath:
		return ErrInvalidPath
	case eReqQueryStringStart, eReqQueryString:
		return ErrInvalidQueryString
	case eReqFragmentStart, eReqFragment:
		return ErrInvalidFragment
	default:
		return ErrInvalidURL
	}
}
