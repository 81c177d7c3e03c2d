package httpparser

import (
	"errors"

	"github.com/indigo-web/httpparser/config"
	"github.com/indigo-web/httpparser/http/method"
	"github.com/indigo-web/httpparser/http/status"
)

var errUnknownAction = errors.New("unknown headers action")

const (
	VersionMajor = 2
	VersionMinor = 9
	VersionPatch = 4
)

// Version returns the version of the parser's behaviour. Messages accepted and rejected by
// the parser follow the same rules for any version with equal major and minor numbers.
func Version() (major, minor, patch int) {
	return VersionMajor, VersionMinor, VersionPatch
}

// Parser is an incremental HTTP/1.x parser. It consumes the stream in arbitrary pieces,
// reporting the parsed entities through the callbacks of Settings. The parser never
// copies or buffers any part of the stream, so it's suitable to be embedded into a
// connection object, living as long as the connection does.
//
// Parser isn't safe for concurrent use.
type Parser struct {
	// Data is an arbitrary value, the parser doesn't touch it. It's preserved by Init.
	Data any

	cfg           config.Config
	typ           Type
	state         parserState
	headerState   headerState
	flags         Flags
	index         uint8
	nread         uint32
	contentLength uint64
	major, minor  uint16
	statusCode    uint16
	method        method.Method
	errno         Errno
	cbErr         error
	upgrade       bool
}

// New returns a parser initialized for the messages of the given type. Passing nil cfg
// is the same as passing config.Default().
func New(cfg *config.Config, typ Type) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &Parser{cfg: *cfg}
	p.Init(typ)

	return p
}

// Init resets the parser into the initial state, dropping any error recorded. Data and
// the configuration are preserved.
func (p *Parser) Init(typ Type) {
	*p = Parser{
		Data: p.Data,
		cfg:  p.cfg,
		typ:  typ,
	}

	if p.cfg.Headers.MaxSize == 0 {
		p.cfg.Headers.MaxSize = config.Default().Headers.MaxSize
	}

	p.state = p.startState()
	p.contentLength = UnknownLength
}

// SetMaxHeaderSize overrides the header size limit of this parser only.
func (p *Parser) SetMaxHeaderSize(size uint32) {
	p.cfg.Headers.MaxSize = size
}

// Pause pauses or resumes the parser. A paused parser consumes nothing until resumed,
// returning ErrPaused from Execute. It's a no-op if the parser has already failed.
func (p *Parser) Pause(paused bool) {
	if p.errno != OK && p.errno != ErrPaused {
		return
	}

	if paused {
		p.errno = ErrPaused
	} else {
		p.errno = OK
	}
}

// ShouldKeepAlive reports whether the connection may carry another message after the
// current one. Meaningful in OnHeadersComplete and OnMessageComplete.
func (p *Parser) ShouldKeepAlive() bool {
	if p.major > 1 || (p.major == 1 && p.minor > 0) {
		if p.flags.Has(FlagConnectionClose) {
			return false
		}
	} else if !p.flags.Has(FlagConnectionKeepAlive) {
		return false
	}

	return !p.messageNeedsEOF()
}

// messageNeedsEOF reports whether the end of the current message can be detected only
// by the connection being closed.
func (p *Parser) messageNeedsEOF() bool {
	if p.typ == Request {
		return false
	}

	if p.statusCode/100 == 1 || p.statusCode == 204 || p.statusCode == 304 ||
		p.flags.Has(FlagSkipBody) {
		return false
	}

	if p.flags.Has(FlagTransferEncoding) && !p.flags.Has(FlagChunked) {
		return true
	}

	return !p.flags.Has(FlagChunked) && p.contentLength == UnknownLength
}

// BodyIsFinal reports whether the body piece being delivered to OnBody is the last one
// of the message.
func (p *Parser) BodyIsFinal() bool {
	return p.state == eMessageDone
}

// HTTPMajor returns the major version of the protocol of the current message.
func (p *Parser) HTTPMajor() uint16 {
	return p.major
}

// HTTPMinor returns the minor version of the protocol of the current message.
func (p *Parser) HTTPMinor() uint16 {
	return p.minor
}

// StatusCode returns the status code of the current response. Always zero for requests.
func (p *Parser) StatusCode() status.Code {
	return status.Code(p.statusCode)
}

// Method returns the method of the current request. Always method.Unknown for responses.
func (p *Parser) Method() method.Method {
	return p.method
}

// Upgrade reports whether the connection is switching to another protocol after the
// current message. When Execute returns with Upgrade set, the rest of the passed data
// doesn't belong to HTTP anymore.
func (p *Parser) Upgrade() bool {
	return p.upgrade
}

// Type returns the kind of messages parsed. For parsers initialized with Either it turns
// into Request or Response after the first message is recognized.
func (p *Parser) Type() Type {
	return p.typ
}

// ContentLength returns the number of body bytes remaining, which is the length of the
// current chunk in OnChunkHeader. UnknownLength is returned if the length isn't known.
func (p *Parser) ContentLength() uint64 {
	return p.contentLength
}

func (p *Parser) Flags() Flags {
	return p.flags
}

// Errno returns the code of the last error, OK if there's none.
func (p *Parser) Errno() Errno {
	return p.errno
}

// Err returns the last error. Errors raised by callbacks are wrapped into *CallbackError.
func (p *Parser) Err() error {
	switch {
	case p.errno == OK:
		return nil
	case p.cbErr != nil:
		return &CallbackError{Errno: p.errno, Err: p.cbErr}
	default:
		return p.errno
	}
}

func (p *Parser) startState() parserState {
	switch p.typ {
	case Request:
		return eStartReq
	case Response:
		return eStartRes
	default:
		return eStartReqOrRes
	}
}

// newMessage returns the state following a complete message.
func (p *Parser) newMessage() parserState {
	p.nread = 0

	if p.ShouldKeepAlive() {
		return p.startState()
	}

	return eDead
}

func (p *Parser) resetMessage() {
	p.flags = 0
	p.contentLength = UnknownLength
}

func (p *Parser) fail(errno Errno, offset int) (int, error) {
	if p.errno == OK {
		p.errno = errno
	}

	return offset, p.Err()
}

func (p *Parser) setCallbackErr(errno Errno, err error) {
	p.errno = errno
	p.cbErr = err
}

// countHeader increments the number of bytes consumed in the current header section
// and reports whether it's still within the limit.
func (p *Parser) countHeader() bool {
	p.nread++
	return p.nread <= p.cfg.Headers.MaxSize
}

// notify invokes the callback, if any. It returns false if the parser must stop, either
// because the callback failed or because it paused the parser.
func (p *Parser) notify(cb NotifyCallback, errno Errno) bool {
	if cb == nil {
		return true
	}

	if err := cb(p); err != nil {
		p.setCallbackErr(errno, err)
	}

	return p.errno == OK
}

const noMark = -1

// flush passes data[*mark:end] to the callback, if the mark is set, and unsets the mark.
// The return value has the same meaning as of notify.
func (p *Parser) flush(cb DataCallback, errno Errno, mark *int, data []byte, end int) bool {
	if *mark == noMark {
		return true
	}

	start := *mark
	*mark = noMark

	if cb == nil {
		return true
	}

	if err := cb(p, data[start:end]); err != nil {
		p.setCallbackErr(errno, err)
	}

	return p.errno == OK
}

// headersComplete invokes the callback and applies the action it returned.
func (p *Parser) headersComplete(cb HeadersCompleteCallback) bool {
	if cb == nil {
		return true
	}

	action, err := cb(p)
	if err != nil {
		p.setCallbackErr(ErrCBHeadersComplete, err)
		return false
	}

	switch action {
	case Continue:
	case NoBodyNoMessages:
		p.upgrade = true
		p.flags |= FlagSkipBody
	case NoBody:
		p.flags |= FlagSkipBody
	default:
		p.setCallbackErr(ErrCBHeadersComplete, errUnknownAction)
	}

	return p.errno == OK
}

// bodyState selects the way the body is framed once the headers are complete.
func (p *Parser) bodyState() (parserState, Errno) {
	switch {
	case p.flags.Has(FlagSkipBody):
		return eMessageDone, OK
	case p.flags.Has(FlagChunked):
		// Content-Length, if any, is ignored
		return eChunkSizeStart, OK
	case p.flags.Has(FlagTransferEncoding):
		// the final coding isn't chunked, so only the end of the connection can
		// delimit the body. Requests can't be framed this way.
		if p.typ == Request {
			return eDead, ErrInvalidTransferEncoding
		}

		return eBodyIdentityEOF, OK
	case p.contentLength == 0:
		return eMessageDone, OK
	case p.contentLength != UnknownLength:
		return eBodyIdentity, OK
	case p.messageNeedsEOF():
		return eBodyIdentityEOF, OK
	default:
		return eMessageDone, OK
	}
}
