package main

import (
	"io"
	"strconv"

	"github.com/indigo-web/httpparser/http/status"
	"github.com/indigo-web/httpparser/httpparser"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Record is a single line of the output.
type Record struct {
	Event     string  `json:"event"`
	Data      string  `json:"data,omitempty"`
	Method    string  `json:"method,omitempty"`
	Status    int     `json:"status,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Version   string  `json:"version,omitempty"`
	KeepAlive *bool   `json:"keep_alive,omitempty"`
	Length    *uint64 `json:"length,omitempty"`
	Upgrade   bool    `json:"upgrade,omitempty"`
	Rest      int     `json:"rest,omitempty"`
}

// Dumper writes parser callbacks as JSON lines.
type Dumper struct {
	enc      *json.Encoder
	settings httpparser.Settings
	upgraded bool
}

func NewDumper(w io.Writer) *Dumper {
	d := &Dumper{
		enc: json.ConfigCompatibleWithStandardLibrary.NewEncoder(w),
	}
	d.settings = httpparser.Settings{
		OnMessageBegin: d.notify("message-begin"),
		OnURL:          d.data("url"),
		OnStatus:       d.data("status"),
		OnHeaderField:  d.data("header-field"),
		OnHeaderValue:  d.data("header-value"),
		OnHeadersComplete: func(p *httpparser.Parser) (httpparser.HeadersAction, error) {
			record := Record{
				Event:   "headers-complete",
				Version: strconv.Itoa(int(p.HTTPMajor())) + "." + strconv.Itoa(int(p.HTTPMinor())),
				Upgrade: p.Upgrade(),
			}
			if p.Type() == httpparser.Response {
				record.Status = int(p.StatusCode())
				record.Reason = string(status.Text(p.StatusCode()))
			} else {
				record.Method = p.Method().String()
			}
			if length := p.ContentLength(); length != httpparser.UnknownLength {
				record.Length = &length
			}

			return httpparser.Continue, d.enc.Encode(record)
		},
		OnBody: d.data("body"),
		OnMessageComplete: func(p *httpparser.Parser) error {
			keepAlive := p.ShouldKeepAlive()
			d.upgraded = p.Upgrade()
			return d.enc.Encode(Record{Event: "message-complete", KeepAlive: &keepAlive})
		},
		OnChunkHeader: func(p *httpparser.Parser) error {
			length := p.ContentLength()
			return d.enc.Encode(Record{Event: "chunk-header", Length: &length})
		},
		OnChunkComplete: d.notify("chunk-complete"),
	}

	return d
}

// Dump feeds the data by pieces of the given size. Non-positive size feeds the whole data
// at once. The returned offset points at the byte the parser stopped at.
func (d *Dumper) Dump(p *httpparser.Parser, data []byte, piece int, eof bool) (offset int, err error) {
	if piece <= 0 {
		piece = len(data)
	}

	for offset < len(data) {
		end := min(offset+piece, len(data))
		n, err := p.Execute(&d.settings, data[offset:end])
		offset += n
		if err != nil {
			return offset, err
		}

		if d.upgraded || offset < end {
			// the parser leaves the rest of the stream to the upgraded protocol
			return offset, d.enc.Encode(Record{
				Event:   "upgrade",
				Upgrade: d.upgraded,
				Rest:    len(data) - offset,
			})
		}
	}

	if eof {
		if _, err = p.Execute(&d.settings, nil); err != nil {
			return offset, err
		}
	}

	return offset, nil
}

func (d *Dumper) notify(event string) httpparser.NotifyCallback {
	return func(*httpparser.Parser) error {
		return d.enc.Encode(Record{Event: event})
	}
}

func (d *Dumper) data(event string) httpparser.DataCallback {
	return func(_ *httpparser.Parser, data []byte) error {
		return d.enc.Encode(Record{Event: event, Data: uf.B2S(data)})
	}
}
