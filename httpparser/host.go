package httpparser

type hostState uint8

const (
	hostDead hostState = iota + 1
	hostUserinfoStart
	hostUserinfo
	hostStart
	hostV6Start
	hostHost
	hostV6
	hostV6End
	hostV6ZoneStart
	hostV6Zone
	hostPortStart
	hostPort
)

// parseHostChar is the transition function of the authority sub-machine.
func parseHostChar(s hostState, ch byte, strict bool) hostState {
	switch s {
	case hostUserinfo, hostUserinfoStart:
		if ch == '@' {
			return hostStart
		}

		if isUserinfoChar(ch) {
			return hostUserinfo
		}
	case hostStart:
		if ch == '[' {
			return hostV6Start
		}

		if isHostChar(ch, strict) {
			return hostHost
		}
	case hostHost, hostV6End:
		if s == hostHost && isHostChar(ch, strict) {
			return hostHost
		}

		if ch == ':' {
			return hostPortStart
		}
	case hostV6, hostV6Start:
		if s == hostV6 && ch == ']' {
			return hostV6End
		}

		if isHex(ch) || ch == ':' || ch == '.' {
			return hostV6
		}

		if s == hostV6 && ch == '%' {
			return hostV6ZoneStart
		}
	case hostV6Zone, hostV6ZoneStart:
		if s == hostV6Zone && ch == ']' {
			return hostV6End
		}

		// RFC 6874 Zone ID consists of 1*( unreserved / pct-encoded)
		if isAlphanum(ch) || ch == '%' || ch == '.' || ch == '-' || ch == '_' || ch == '~' {
			return hostV6Zone
		}
	case hostPort, hostPortStart:
		if isNum(ch) {
			return hostPort
		}
	}

	return hostDead
}

// parseHost re-scans the authority span found by the URL sub-machine and splits it into
// userinfo, host and port. IPv6 literals are reported without the enclosing brackets.
func parseHost(buf []byte, u *URL, foundAt, strict bool) error {
	authority := u.Fields[FieldHost]
	u.Fields[FieldHost].Len = 0

	s := hostStart
	if foundAt {
		s = hostUserinfoStart
	}

	for i := authority.Off; i < authority.Off+authority.Len; i++ {
		next := parseHostChar(s, buf[i], strict)

		switch next {
		case hostDead:
			return ErrInvalidHost
		case hostHost, hostV6:
			if s != next {
				u.Fields[FieldHost].Off = i
			}

			u.Fields[FieldHost].Len++
		case hostV6ZoneStart, hostV6Zone:
			u.Fields[FieldHost].Len++
		case hostPort:
			if s != hostPort {
				u.Fields[FieldPort] = Span{Off: i}
				u.FieldSet |= 1 << FieldPort
			}

			u.Fields[FieldPort].Len++
		case hostUserinfo:
			if s != hostUserinfo {
				u.Fields[FieldUserinfo] = Span{Off: i}
				u.FieldSet |= 1 << FieldUserinfo
			}

			u.Fields[FieldUserinfo].Len++
		}

		s = next
	}

	switch s {
	case hostStart, hostV6Start, hostV6, hostV6ZoneStart, hostV6Zone,
		hostPortStart, hostUserinfo, hostUserinfoStart:
		return ErrInvalidHost
	}

	return nil
}
