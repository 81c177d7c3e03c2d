package httpparser

// Type is the kind of messages a parser expects.
type Type uint8

const (
	Request Type = iota
	Response
	// Either detects the kind by the first message and sticks to it afterward.
	Either
)

func (t Type) String() string {
	switch t {
	case Request:
		return "request"
	case Response:
		return "response"
	case Either:
		return "either"
	default:
		return "unknown"
	}
}

type parserState uint8

const (
	eDead parserState = iota + 1

	eStartReqOrRes
	eResOrRespH
	eStartRes
	eResH
	eResHT
	eResHTT
	eResHTTP
	eResHTTPMajor
	eResHTTPDot
	eResHTTPMinor
	eResHTTPEnd
	eResFirstStatusCode
	eResStatusCode
	eResStatusStart
	eResStatus
	eResLineAlmostDone

	eStartReq
	eReqMethod
	eReqSpacesBeforeURL
	eReqSchema
	eReqSchemaSlash
	eReqSchemaSlashSlash
	eReqServerStart
	eReqServer
	eReqServerWithAt
	eReqPath
	eReqQueryStringStart
	eReqQueryString
	eReqFragmentStart
	eReqFragment
	eReqHTTPStart
	eReqHTTPH
	eReqHTTPHT
	eReqHTTPHTT
	eReqHTTPHTTP
	eReqHTTPI
	eReqHTTPIC
	eReqHTTPMajor
	eReqHTTPDot
	eReqHTTPMinor
	eReqHTTPEnd
	eReqLineAlmostDone

	eHeaderFieldStart
	eHeaderField
	eHeaderValueDiscardWS
	eHeaderValueDiscardWSAlmostDone
	eHeaderValueDiscardLWS
	eHeaderValueStart
	eHeaderValue
	eHeaderValueLWS
	eHeaderAlmostDone

	eChunkSizeStart
	eChunkSize
	eChunkParameters
	eChunkSizeAlmostDone

	eHeadersAlmostDone
	// eHeadersDone must stay the last state of the header section, as everything up
	// to it is counted against the header size limit.
	eHeadersDone

	eChunkData
	eChunkDataAlmostDone
	eChunkDataDone

	eBodyIdentity
	eBodyIdentityEOF

	eMessageDone
)

func (s parserState) parsingHeader() bool {
	return s <= eHeadersDone
}

// headerState tracks the recognition of the few header names and values affecting
// the framing.
type headerState uint8

const (
	hGeneral headerState = iota
	hC
	hCO
	hCON

	hMatchingConnection
	hMatchingProxyConnection
	hMatchingContentLength
	hMatchingTransferEncoding
	hMatchingUpgrade

	hConnection
	hContentLength
	hContentLengthNum
	hContentLengthWS
	hTransferEncoding
	hUpgrade

	hMatchingTransferEncodingTokenStart
	hMatchingTransferEncodingChunked
	hMatchingTransferEncodingToken

	hMatchingConnectionTokenStart
	hMatchingConnectionKeepAlive
	hMatchingConnectionClose
	hMatchingConnectionUpgrade
	hMatchingConnectionToken

	hTransferEncodingChunked
	hConnectionKeepAlive
	hConnectionClose
	hConnectionUpgrade
)

// Flags is a set of facts about the current message collected while parsing it.
type Flags uint16

const (
	FlagChunked Flags = 1 << iota
	FlagConnectionKeepAlive
	FlagConnectionClose
	FlagConnectionUpgrade
	FlagTrailing
	FlagUpgrade
	FlagSkipBody
	FlagContentLength
	FlagTransferEncoding
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}
