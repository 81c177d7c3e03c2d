package httpparser

type (
	// NotifyCallback is invoked on events carrying no payload. A non-nil error halts
	// the parser.
	NotifyCallback func(p *Parser) error
	// DataCallback receives a view into the buffer passed into Execute. The slice must
	// not be retained after the callback returns, as it is owned by the caller of Execute.
	// A single field may be delivered by several consecutive calls.
	DataCallback func(p *Parser, data []byte) error
	// HeadersCompleteCallback is invoked once the header section is over. The returned
	// action controls whether the parser expects a body.
	HeadersCompleteCallback func(p *Parser) (HeadersAction, error)
)

// HeadersAction tells the parser how to proceed after the headers are complete.
type HeadersAction uint8

const (
	// Continue parses the body, if any, as framed by the headers.
	Continue HeadersAction = iota
	// NoBody assumes the message has no body, e.g. it's a response to a HEAD request.
	NoBody
	// NoBodyNoMessages assumes the message has no body and no further messages follow
	// on this connection, e.g. a successful response to CONNECT. The parser reports an
	// upgrade in this case.
	NoBodyNoMessages
)

// Settings is a set of callbacks. Each one is optional. Settings may be shared between
// parsers, as long as the callbacks themselves don't share any state.
type Settings struct {
	OnMessageBegin    NotifyCallback
	OnURL             DataCallback
	OnStatus          DataCallback
	OnHeaderField     DataCallback
	OnHeaderValue     DataCallback
	OnHeadersComplete HeadersCompleteCallback
	OnBody            DataCallback
	OnMessageComplete NotifyCallback
	// OnChunkHeader is called when a chunk length is known. Parser.ContentLength() holds
	// the length of the current chunk. A zero length means the trailer section follows.
	OnChunkHeader   NotifyCallback
	OnChunkComplete NotifyCallback
}
