package testutil

import (
	"strconv"
	"strings"

	"github.com/indigo-web/httpparser/httpparser"
)

// SplitIntoParts cuts data into pieces of n bytes each. The last one may be shorter.
func SplitIntoParts(data []byte, n int) (parts [][]byte) {
	for i := 0; i < len(data); i += n {
		end := i + n
		if end > len(data) {
			end = len(data)
		}

		parts = append(parts, data[i:end])
	}

	return parts
}

// SplitAt cuts data at the given offsets, which must be ascending.
func SplitAt(data []byte, offsets ...int) (parts [][]byte) {
	var prev int
	for _, offset := range offsets {
		parts = append(parts, data[prev:offset])
		prev = offset
	}

	return append(parts, data[prev:])
}

// Feed passes the parts one after another, stopping at the first error. Every part is
// copied into a fresh buffer, so that nothing may rely on the previous ones being still
// around. It returns the total number of bytes consumed.
func Feed(p *httpparser.Parser, settings *httpparser.Settings, parts ...[]byte) (n int, err error) {
	for _, part := range parts {
		buff := make([]byte, len(part))
		copy(buff, part)

		consumed, err := p.Execute(settings, buff)
		n += consumed
		if err != nil {
			return n, err
		}

		if consumed < len(buff) {
			// upgraded
			break
		}
	}

	return n, nil
}

// FeedPartially feeds data in pieces of n bytes.
func FeedPartially(p *httpparser.Parser, settings *httpparser.Settings, data []byte, n int) (int, error) {
	return Feed(p, settings, SplitIntoParts(data, n)...)
}

// EncodeChunked encodes the body with chunks of the given sizes. The rest of the body,
// if any, is put into one more chunk. Trailer lines, if passed, are put after the
// terminating chunk.
func EncodeChunked(body string, sizes []int, trailers ...string) string {
	var b strings.Builder

	writeChunk := func(chunk string) {
		b.WriteString(strconv.FormatUint(uint64(len(chunk)), 16))
		b.WriteString("\r\n")
		b.WriteString(chunk)
		b.WriteString("\r\n")
	}

	for _, size := range sizes {
		if size > len(body) {
			size = len(body)
		}

		if size == 0 {
			continue
		}

		writeChunk(body[:size])
		body = body[size:]
	}

	if len(body) > 0 {
		writeChunk(body)
	}

	b.WriteString("0\r\n")
	for _, trailer := range trailers {
		b.WriteString(trailer)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")

	return b.String()
}
