package httpparser

import "github.com/indigo-web/httpparser/http/method"

// firstMethod guesses the method by its first letter. The guess is refined by
// nextMethod as soon as the following letters contradict it.
func firstMethod(ch byte) method.Method {
	switch ch {
	case 'A':
		return method.ACL
	case 'B':
		return method.BIND
	case 'C':
		// or COPY, CHECKOUT
		return method.CONNECT
	case 'D':
		return method.DELETE
	case 'G':
		return method.GET
	case 'H':
		return method.HEAD
	case 'L':
		// or LINK
		return method.LOCK
	case 'M':
		// or MOVE, MKACTIVITY, MERGE, M-SEARCH, MKCALENDAR
		return method.MKCOL
	case 'N':
		return method.NOTIFY
	case 'O':
		return method.OPTIONS
	case 'P':
		// or PROPFIND, PROPPATCH, PUT, PATCH, PURGE
		return method.POST
	case 'R':
		// or REBIND
		return method.REPORT
	case 'S':
		// or SEARCH, SOURCE
		return method.SUBSCRIBE
	case 'T':
		return method.TRACE
	case 'U':
		// or UNSUBSCRIBE, UNBIND, UNLINK
		return method.UNLOCK
	default:
		return method.Unknown
	}
}

type methodStep struct {
	method method.Method
	index  uint8
	char   byte
}

// methodTransitions resolve shared prefixes: having guessed the key's method and met
// the key's character at the key's index, the guess switches to the value.
var methodTransitions = map[methodStep]method.Method{
	{method.POST, 1, 'U'}:      method.PUT,
	{method.POST, 1, 'A'}:      method.PATCH,
	{method.POST, 1, 'R'}:      method.PROPFIND,
	{method.PUT, 2, 'R'}:       method.PURGE,
	{method.CONNECT, 1, 'H'}:   method.CHECKOUT,
	{method.CONNECT, 2, 'P'}:   method.COPY,
	{method.MKCOL, 1, 'O'}:     method.MOVE,
	{method.MKCOL, 1, 'E'}:     method.MERGE,
	{method.MKCOL, 1, '-'}:     method.MSEARCH,
	{method.MKCOL, 2, 'A'}:     method.MKACTIVITY,
	{method.MKCOL, 3, 'A'}:     method.MKCALENDAR,
	{method.SUBSCRIBE, 1, 'E'}: method.SEARCH,
	{method.SUBSCRIBE, 1, 'O'}: method.SOURCE,
	{method.REPORT, 2, 'B'}:    method.REBIND,
	{method.PROPFIND, 4, 'P'}:  method.PROPPATCH,
	{method.LOCK, 1, 'I'}:      method.LINK,
	{method.UNLOCK, 2, 'S'}:    method.UNSUBSCRIBE,
	{method.UNLOCK, 2, 'B'}:    method.UNBIND,
	{method.UNLOCK, 3, 'I'}:    method.UNLINK,
}

// nextMethod returns method.Unknown if no method continues the guessed one this way.
func nextMethod(m method.Method, index uint8, ch byte) method.Method {
	return methodTransitions[methodStep{m, index, ch}]
}
