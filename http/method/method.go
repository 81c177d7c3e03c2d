package method

type Method uint8

const (
	Unknown Method = iota
	DELETE
	GET
	HEAD
	POST
	PUT
	// pathological
	CONNECT
	OPTIONS
	TRACE
	// WebDAV
	COPY
	LOCK
	MKCOL
	MOVE
	PROPFIND
	PROPPATCH
	SEARCH
	UNLOCK
	BIND
	REBIND
	UNBIND
	ACL
	// subversion
	REPORT
	MKACTIVITY
	CHECKOUT
	MERGE
	// upnp
	MSEARCH
	NOTIFY
	SUBSCRIBE
	UNSUBSCRIBE
	// RFC-5789
	PATCH
	PURGE
	// CalDAV
	MKCALENDAR
	// RFC-2068, section 19.6.1.2
	LINK
	UNLINK
	// icecast
	SOURCE

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the supported HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{
	DELETE, GET, HEAD, POST, PUT, CONNECT, OPTIONS, TRACE, COPY, LOCK, MKCOL, MOVE, PROPFIND,
	PROPPATCH, SEARCH, UNLOCK, BIND, REBIND, UNBIND, ACL, REPORT, MKACTIVITY, CHECKOUT, MERGE,
	MSEARCH, NOTIFY, SUBSCRIBE, UNSUBSCRIBE, PATCH, PURGE, MKCALENDAR, LINK, UNLINK, SOURCE,
}

var names = [...]string{
	Unknown:     "<unknown>",
	DELETE:      "DELETE",
	GET:         "GET",
	HEAD:        "HEAD",
	POST:        "POST",
	PUT:         "PUT",
	CONNECT:     "CONNECT",
	OPTIONS:     "OPTIONS",
	TRACE:       "TRACE",
	COPY:        "COPY",
	LOCK:        "LOCK",
	MKCOL:       "MKCOL",
	MOVE:        "MOVE",
	PROPFIND:    "PROPFIND",
	PROPPATCH:   "PROPPATCH",
	SEARCH:      "SEARCH",
	UNLOCK:      "UNLOCK",
	BIND:        "BIND",
	REBIND:      "REBIND",
	UNBIND:      "UNBIND",
	ACL:         "ACL",
	REPORT:      "REPORT",
	MKACTIVITY:  "MKACTIVITY",
	CHECKOUT:    "CHECKOUT",
	MERGE:       "MERGE",
	MSEARCH:     "M-SEARCH",
	NOTIFY:      "NOTIFY",
	SUBSCRIBE:   "SUBSCRIBE",
	UNSUBSCRIBE: "UNSUBSCRIBE",
	PATCH:       "PATCH",
	PURGE:       "PURGE",
	MKCALENDAR:  "MKCALENDAR",
	LINK:        "LINK",
	UNLINK:      "UNLINK",
	SOURCE:      "SOURCE",
}

// String returns the method's token as it appears on the wire. Out-of-range values are
// reported as "<unknown>".
func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}

// Parse returns the method matching the token exactly (case-sensitive), or Unknown.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		switch str {
		case "GET":
			return GET
		case "PUT":
			return PUT
		case "ACL":
			return ACL
		}
	case 4:
		switch str {
		case "POST":
			return POST
		case "HEAD":
			return HEAD
		case "COPY":
			return COPY
		case "LOCK":
			return LOCK
		case "MOVE":
			return MOVE
		case "BIND":
			return BIND
		case "LINK":
			return LINK
		}
	case 5:
		switch str {
		case "PATCH":
			return PATCH
		case "TRACE":
			return TRACE
		case "MKCOL":
			return MKCOL
		case "MERGE":
			return MERGE
		case "PURGE":
			return PURGE
		}
	case 6:
		switch str {
		case "DELETE":
			return DELETE
		case "SEARCH":
			return SEARCH
		case "UNLOCK":
			return UNLOCK
		case "REBIND":
			return REBIND
		case "UNBIND":
			return UNBIND
		case "REPORT":
			return REPORT
		case "NOTIFY":
			return NOTIFY
		case "UNLINK":
			return UNLINK
		case "SOURCE":
			return SOURCE
		}
	case 7:
		switch str {
		case "CONNECT":
			return CONNECT
		case "OPTIONS":
			return OPTIONS
		}
	case 8:
		switch str {
		case "PROPFIND":
			return PROPFIND
		case "CHECKOUT":
			return CHECKOUT
		case "M-SEARCH":
			return MSEARCH
		}
	case 9:
		switch str {
		case "PROPPATCH":
			return PROPPATCH
		case "SUBSCRIBE":
			return SUBSCRIBE
		}
	case 10:
		switch str {
		case "MKACTIVITY":
			return MKACTIVITY
		case "MKCALENDAR":
			return MKCALENDAR
		}
	case 11:
		if str == "UNSUBSCRIBE" {
			return UNSUBSCRIBE
		}
	}

	return Unknown
}
