package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

type logRecorder struct {
	lines []string
}

func (l *logRecorder) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// decode reads the output back, merging the consecutive data records of the same event.
func decode(t *testing.T, out []byte) (records []Record) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		var record Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))

		if n := len(records); n > 0 && isData(record.Event) && records[n-1].Event == record.Event {
			records[n-1].Data += record.Data
			continue
		}

		records = append(records, record)
	}

	require.NoError(t, scanner.Err())
	return records
}

func isData(event string) bool {
	switch event {
	case "url", "status", "header-field", "header-value", "body":
		return true
	default:
		return false
	}
}

func events(records []Record) (out []string) {
	for _, record := range records {
		out = append(out, record.Event)
	}

	return out
}

func dump(t *testing.T, input string, args ...string) ([]Record, *logRecorder, int) {
	var stdout bytes.Buffer
	logger := new(logRecorder)
	code := run(args, strings.NewReader(input), &stdout, logger)

	return decode(t, stdout.Bytes()), logger, code
}

func TestDump(t *testing.T) {
	const request = "POST /upload HTTP/1.1\r\nHost: x\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n"

	for _, piece := range []string{"0", "1", "7"} {
		t.Run("piece "+piece, func(t *testing.T) {
			records, logger, code := dump(t, request, "-type", "request", "-piece", piece)
			require.Zero(t, code, logger.lines)
			require.Equal(t, []string{
				"message-begin", "url", "header-field", "header-value", "header-field", "header-value",
				"headers-complete", "chunk-header", "body", "chunk-complete", "chunk-header", "body",
				"chunk-complete", "chunk-header", "chunk-complete", "message-complete",
			}, events(records))

			require.Equal(t, "/upload", records[1].Data)
			require.Equal(t, "POST", records[6].Method)
			require.Equal(t, "1.1", records[6].Version)
			require.Nil(t, records[6].Length)
			require.Equal(t, uint64(5), *records[7].Length)
			require.Equal(t, "hello", records[8].Data)
			require.Equal(t, " world", records[11].Data)
			require.Equal(t, uint64(0), *records[13].Length)
			require.True(t, *records[15].KeepAlive)
		})
	}

	t.Run("response", func(t *testing.T) {
		records, logger, code := dump(t, "HTTP/1.0 404 Nope\r\nContent-Length: 0\r\n\r\n")
		require.Zero(t, code, logger.lines)
		require.Equal(t, []string{
			"message-begin", "status", "header-field", "header-value", "headers-complete", "message-complete",
		}, events(records))
		require.Equal(t, "Nope", records[1].Data)
		require.Equal(t, 404, records[4].Status)
		require.Equal(t, "Not Found", records[4].Reason)
		require.Equal(t, uint64(0), *records[4].Length)
		require.False(t, *records[5].KeepAlive)
	})

	t.Run("body until EOF", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\n\r\nsome data"
		records, logger, code := dump(t, raw, "-type", "response")
		require.Zero(t, code, logger.lines)
		require.Equal(t, "message-complete", records[len(records)-1].Event)

		records, logger, code = dump(t, raw, "-type", "response", "-eof=false")
		require.Zero(t, code, logger.lines)
		require.Equal(t, "body", records[len(records)-1].Event)
	})

	t.Run("upgrade", func(t *testing.T) {
		raw := "GET /chat HTTP/1.1\r\nUpgrade: websocket\r\nConnection: Upgrade\r\n\r\n" + "\x81\x05hello"
		for _, piece := range []string{"0", "3"} {
			records, logger, code := dump(t, raw, "-piece", piece)
			require.Zero(t, code, logger.lines)
			last := records[len(records)-1]
			require.Equal(t, "upgrade", last.Event)
			require.True(t, last.Upgrade)
			require.Equal(t, 7, last.Rest)
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.bin")
		require.NoError(t, os.WriteFile(path, []byte("GET / HTTP/1.1\r\n\r\n"), 0o644))

		var stdout bytes.Buffer
		logger := new(logRecorder)
		require.Zero(t, run([]string{path}, strings.NewReader(""), &stdout, logger), logger.lines)
		require.Len(t, decode(t, stdout.Bytes()), 4)
	})
}

func TestDumpErrors(t *testing.T) {
	t.Run("malformed input", func(t *testing.T) {
		records, logger, code := dump(t, "GET / HTTP/1.1\r\nHel\"lo: x\r\n\r\n", "-type", "request")
		require.Equal(t, 1, code)
		require.Equal(t, []string{"message-begin", "url"}, events(records))
		require.Len(t, logger.lines, 1)
		require.Contains(t, logger.lines[0], "offset 19")
		require.Contains(t, logger.lines[0], "INVALID_HEADER_TOKEN")
	})

	t.Run("unexpected EOF", func(t *testing.T) {
		_, logger, code := dump(t, "GET / HTTP/1.1\r\nHost", "-type", "request")
		require.Equal(t, 1, code)
		require.Contains(t, logger.lines[0], "INVALID_EOF_STATE")
	})

	t.Run("header size limit", func(t *testing.T) {
		_, logger, code := dump(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\n", "-max-header-size", "10")
		require.Equal(t, 1, code)
		require.Contains(t, logger.lines[0], "offset 10")
		require.Contains(t, logger.lines[0], "HEADER_OVERFLOW")
	})

	t.Run("strict", func(t *testing.T) {
		_, _, code := dump(t, "HTTP/1.1 200 OK\r\n\r\n", "-type", "response", "-strict", "-eof=false")
		require.Zero(t, code)

		_, logger, code := dump(t, "HTTX/1.1 200 OK\r\n\r\n", "-type", "response", "-strict")
		require.Equal(t, 1, code)
		require.Contains(t, logger.lines[0], "STRICT")
	})

	t.Run("bad usage", func(t *testing.T) {
		_, logger, code := dump(t, "", "-type", "neither")
		require.Equal(t, 2, code)
		require.Contains(t, logger.lines[0], "unknown message type")

		_, _, code = dump(t, "", "-no-such-flag")
		require.Equal(t, 2, code)
	})

	t.Run("missing file", func(t *testing.T) {
		_, logger, code := dump(t, "", filepath.Join(t.TempDir(), "nope"))
		require.Equal(t, 1, code)
		require.Len(t, logger.lines, 1)
	})
}
