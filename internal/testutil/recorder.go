package testutil

import "github.com/indigo-web/httpparser/httpparser"

type Kind string

const (
	MessageBegin    Kind = "message-begin"
	URL             Kind = "url"
	Status          Kind = "status"
	HeaderField     Kind = "header-field"
	HeaderValue     Kind = "header-value"
	HeadersComplete Kind = "headers-complete"
	Body            Kind = "body"
	MessageComplete Kind = "message-complete"
	ChunkHeader     Kind = "chunk-header"
	ChunkComplete   Kind = "chunk-complete"
)

// Event is a single callback invocation. Consecutive data events of the same kind are
// merged, so the sequence doesn't depend on how the stream was split.
type Event struct {
	Kind Kind
	Data string
}

func (e Event) String() string {
	if len(e.Data) == 0 {
		return string(e.Kind)
	}

	return string(e.Kind) + "(" + e.Data + ")"
}

// Recorder collects the events produced by a parser.
type Recorder struct {
	Events []Event
	// Calls counts every callback invocation, without merging.
	Calls int
	// Action is returned from OnHeadersComplete.
	Action httpparser.HeadersAction
	// Fail, if set, is returned by the callback of the matching kind.
	Fail   error
	FailOn Kind
	// KeepAlive holds ShouldKeepAlive() observed in every OnMessageComplete.
	KeepAlive []bool
	// ChunkSizes holds ContentLength() observed in every OnChunkHeader.
	ChunkSizes []uint64
	// PauseOn pauses the parser in the callback of the matching kind.
	PauseOn Kind
}

func (r *Recorder) Reset() {
	*r = Recorder{}
}

// Settings returns a full set of callbacks, recording into r.
func (r *Recorder) Settings() *httpparser.Settings {
	return &httpparser.Settings{
		OnMessageBegin: r.notify(MessageBegin),
		OnURL:          r.data(URL),
		OnStatus:       r.data(Status),
		OnHeaderField:  r.data(HeaderField),
		OnHeaderValue:  r.data(HeaderValue),
		OnHeadersComplete: func(p *httpparser.Parser) (httpparser.HeadersAction, error) {
			if err := r.push(p, HeadersComplete, ""); err != nil {
				return httpparser.Continue, err
			}

			return r.Action, nil
		},
		OnBody: r.data(Body),
		OnMessageComplete: func(p *httpparser.Parser) error {
			r.KeepAlive = append(r.KeepAlive, p.ShouldKeepAlive())
			return r.push(p, MessageComplete, "")
		},
		OnChunkHeader: func(p *httpparser.Parser) error {
			r.ChunkSizes = append(r.ChunkSizes, p.ContentLength())
			return r.push(p, ChunkHeader, "")
		},
		OnChunkComplete: r.notify(ChunkComplete),
	}
}

// Count returns the number of recorded events of the kind.
func (r *Recorder) Count(kind Kind) (n int) {
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}

	return n
}

// Join concatenates the data of all the events of the kind.
func (r *Recorder) Join(kind Kind) string {
	var buff []byte
	for _, e := range r.Events {
		if e.Kind == kind {
			buff = append(buff, e.Data...)
		}
	}

	return string(buff)
}

func (r *Recorder) notify(kind Kind) httpparser.NotifyCallback {
	return func(p *httpparser.Parser) error {
		return r.push(p, kind, "")
	}
}

func (r *Recorder) data(kind Kind) httpparser.DataCallback {
	return func(p *httpparser.Parser, data []byte) error {
		// the buffer belongs to the caller of Execute, so the data must be copied
		return r.push(p, kind, string(data))
	}
}

func (r *Recorder) push(p *httpparser.Parser, kind Kind, data string) error {
	r.Calls++

	if n := len(r.Events); n > 0 && isData(kind) && r.Events[n-1].Kind == kind {
		r.Events[n-1].Data += data
	} else {
		r.Events = append(r.Events, Event{Kind: kind, Data: data})
	}

	if r.PauseOn == kind {
		p.Pause(true)
	}

	if r.Fail != nil && r.FailOn == kind {
		return r.Fail
	}

	return nil
}

func isData(kind Kind) bool {
	switch kind {
	case URL, Status, HeaderField, HeaderValue, Body:
		return true
	default:
		return false
	}
}
