package httpparser

import "strings"

// Errno identifies the reason the parser stopped. Every value except OK implements a
// terminal condition, with the exception of ErrPaused, which is resumable.
type Errno uint8

const (
	OK Errno = iota

	// callback failures
	ErrCBMessageBegin
	ErrCBURL
	ErrCBHeaderField
	ErrCBHeaderValue
	ErrCBHeadersComplete
	ErrCBBody
	ErrCBMessageComplete
	ErrCBStatus
	ErrCBChunkHeader
	ErrCBChunkComplete

	// parsing failures
	ErrInvalidEOFState
	ErrHeaderOverflow
	ErrClosedConnection
	ErrInvalidVersion
	ErrInvalidStatus
	ErrInvalidMethod
	ErrInvalidURL
	ErrInvalidHost
	ErrInvalidPort
	ErrInvalidPath
	ErrInvalidQueryString
	ErrInvalidFragment
	ErrLFExpected
	ErrInvalidHeaderToken
	ErrInvalidContentLength
	ErrUnexpectedContentLength
	ErrInvalidChunkSize
	ErrInvalidConstant
	ErrInvalidInternalState
	ErrStrict
	ErrPaused
	ErrUnknown
	ErrInvalidTransferEncoding

	errnoCount
)

var errnoTable = [errnoCount]struct {
	name, description string
}{
	OK:                         {"OK", "success"},
	ErrCBMessageBegin:          {"CB_message_begin", "the on_message_begin callback failed"},
	ErrCBURL:                   {"CB_url", "the on_url callback failed"},
	ErrCBHeaderField:           {"CB_header_field", "the on_header_field callback failed"},
	ErrCBHeaderValue:           {"CB_header_value", "the on_header_value callback failed"},
	ErrCBHeadersComplete:       {"CB_headers_complete", "the on_headers_complete callback failed"},
	ErrCBBody:                  {"CB_body", "the on_body callback failed"},
	ErrCBMessageComplete:       {"CB_message_complete", "the on_message_complete callback failed"},
	ErrCBStatus:                {"CB_status", "the on_status callback failed"},
	ErrCBChunkHeader:           {"CB_chunk_header", "the on_chunk_header callback failed"},
	ErrCBChunkComplete:         {"CB_chunk_complete", "the on_chunk_complete callback failed"},
	ErrInvalidEOFState:         {"INVALID_EOF_STATE", "stream ended at an unexpected time"},
	ErrHeaderOverflow:          {"HEADER_OVERFLOW", "too many header bytes seen; overflow detected"},
	ErrClosedConnection:        {"CLOSED_CONNECTION", "data received after completed connection: close message"},
	ErrInvalidVersion:          {"INVALID_VERSION", "invalid HTTP version"},
	ErrInvalidStatus:           {"INVALID_STATUS", "invalid HTTP status code"},
	ErrInvalidMethod:           {"INVALID_METHOD", "invalid HTTP method"},
	ErrInvalidURL:              {"INVALID_URL", "invalid URL"},
	ErrInvalidHost:             {"INVALID_HOST", "invalid host"},
	ErrInvalidPort:             {"INVALID_PORT", "invalid port"},
	ErrInvalidPath:             {"INVALID_PATH", "invalid path"},
	ErrInvalidQueryString:      {"INVALID_QUERY_STRING", "invalid query string"},
	ErrInvalidFragment:         {"INVALID_FRAGMENT", "invalid fragment"},
	ErrLFExpected:              {"LF_EXPECTED", "LF character expected"},
	ErrInvalidHeaderToken:      {"INVALID_HEADER_TOKEN", "invalid character in header"},
	ErrInvalidContentLength:    {"INVALID_CONTENT_LENGTH", "invalid character in content-length header"},
	ErrUnexpectedContentLength: {"UNEXPECTED_CONTENT_LENGTH", "unexpected content-length header"},
	ErrInvalidChunkSize:        {"INVALID_CHUNK_SIZE", "invalid character in chunk size header"},
	ErrInvalidConstant:         {"INVALID_CONSTANT", "invalid constant string"},
	ErrInvalidInternalState:    {"INVALID_INTERNAL_STATE", "encountered unexpected internal state"},
	ErrStrict:                  {"STRICT", "strict mode assertion failed"},
	ErrPaused:                  {"PAUSED", "parser is paused"},
	ErrUnknown:                 {"UNKNOWN", "an unknown error occurred"},
	ErrInvalidTransferEncoding: {"INVALID_TRANSFER_ENCODING", "request has invalid transfer-encoding"},
}

// Name returns the symbolic name of the errno, e.g. INVALID_METHOD. Values out of range
// are named as ErrUnknown.
func (e Errno) Name() string {
	if e >= errnoCount {
		return errnoTable[ErrUnknown].name
	}

	return errnoTable[e].name
}

// Description returns a human-readable explanation of the errno.
func (e Errno) Description() string {
	if e >= errnoCount {
		return errnoTable[ErrUnknown].description
	}

	return errnoTable[e].description
}

func (e Errno) Error() string {
	return "HPE_" + e.Name() + ": " + e.Description()
}

// IsCallback reports whether the errno stands for a failed application callback.
func (e Errno) IsCallback() bool {
	return e >= ErrCBMessageBegin && e <= ErrCBChunkComplete
}

// CallbackError is returned when an application callback returned a non-nil error. Both
// the Errno and the original error can be matched with errors.Is.
type CallbackError struct {
	Errno Errno
	Err   error
}

func (c *CallbackError) Error() string {
	var b strings.Builder
	b.WriteString(c.Errno.Error())
	b.WriteString(": ")
	b.WriteString(c.Err.Error())

	return b.String()
}

func (c *CallbackError) Unwrap() []error {
	return []error{c.Errno, c.Err}
}
