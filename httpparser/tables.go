package httpparser

const (
	cr = '\r'
	lf = '\n'
)

// tokens maps token characters onto their lower-cased form. Every other character maps
// to zero.
var tokens [256]byte

// urlChars marks characters allowed in the path, query and fragment without further
// interpretation. '#' and '?' are excluded, as they open new URL components.
var (
	urlCharsStrict  [256]bool
	urlCharsLenient [256]bool
)

// unhex maps hexadecimal digits onto their values and everything else onto -1.
var unhex [256]int8

func init() {
	for c := '0'; c <= '9'; c++ {
		tokens[c] = byte(c)
	}
	for c := 'a'; c <= 'z'; c++ {
		tokens[c] = byte(c)
		tokens[c-'a'+'A'] = byte(c)
	}
	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		tokens[c] = c
	}

	for c := 33; c < 127; c++ {
		urlCharsStrict[c] = c != '#' && c != '?'
	}

	urlCharsLenient = urlCharsStrict
	urlCharsLenient['\t'] = true
	urlCharsLenient['\f'] = true
	for c := 0x80; c < 256; c++ {
		urlCharsLenient[c] = true
	}

	for i := range unhex {
		unhex[i] = -1
	}
	for c := '0'; c <= '9'; c++ {
		unhex[c] = int8(c - '0')
	}
	for c := 'a'; c <= 'f'; c++ {
		unhex[c] = int8(c-'a') + 10
		unhex[c-'a'+'A'] = int8(c-'a') + 10
	}
}

// token returns the lower-cased form of a header name character, or zero if the
// character isn't allowed in a header name. Outside the strict mode, a space is
// tolerated as well.
func token(c byte, strict bool) byte {
	if c == ' ' && !strict {
		return ' '
	}

	return tokens[c]
}

func isURLChar(c byte, strict bool) bool {
	if strict {
		return urlCharsStrict[c]
	}

	return urlCharsLenient[c]
}

func lower(c byte) byte {
	return c | 0x20
}

func isAlpha(c byte) bool {
	c = lower(c)
	return c >= 'a' && c <= 'z'
}

func isNum(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanum(c byte) bool {
	return isAlpha(c) || isNum(c)
}

func isHex(c byte) bool {
	return unhex[c] != -1
}

func isMark(c byte) bool {
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}

func isUserinfoChar(c byte) bool {
	if isAlphanum(c) || isMark(c) {
		return true
	}

	switch c {
	case '%', ';', ':', '&', '=', '+', '$', ',':
		return true
	}

	return false
}

func isHostChar(c byte, strict bool) bool {
	return isAlphanum(c) || c == '.' || c == '-' || (!strict && c == '_')
}

// isHeaderChar reports whether the character may appear in a header value.
func isHeaderChar(c byte) bool {
	return c == cr || c == lf || c == '\t' || (c > 31 && c != 127)
}
