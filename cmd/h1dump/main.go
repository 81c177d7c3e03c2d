// Command h1dump feeds a raw HTTP/1.x capture through the parser and prints every
// callback as a JSON line. It's handy for inspecting how the parser sees the stream.
//
//	h1dump -type response -piece 7 capture.bin
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/indigo-web/httpparser/config"
	"github.com/indigo-web/httpparser/httpparser"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, log.Default()))
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger Logger) int {
	fs := flag.NewFlagSet("h1dump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		typ           = fs.String("type", "either", "message type: request, response or either")
		piece         = fs.Int("piece", 0, "feed the input by pieces of this size (0 means all at once)")
		strict        = fs.Bool("strict", false, "enable the strict mode")
		maxHeaderSize = fs.Uint("max-header-size", 0, "header section size limit (0 means default)")
		lenientHdrs   = fs.Bool("lenient-headers", false, "don't validate header values")
		lenientCL     = fs.Bool("lenient-chunked-length", false, "permit Content-Length with chunked encoding")
		eof           = fs.Bool("eof", true, "signal the end of stream after the input is over")
	)
	if err := fs.Parse(args); err != nil {
		logger.Printf("h1dump: %s", err)
		return 2
	}

	parserType, err := parseType(*typ)
	if err != nil {
		logger.Printf("h1dump: %s", err)
		return 2
	}

	input := stdin
	if fs.NArg() > 0 {
		file, err := os.Open(fs.Arg(0))
		if err != nil {
			logger.Printf("h1dump: %s", err)
			return 1
		}
		defer file.Close()
		input = file
	}

	data, err := io.ReadAll(input)
	if err != nil {
		logger.Printf("h1dump: read input: %s", err)
		return 1
	}

	cfg := config.Default()
	cfg.Strict = *strict
	cfg.Lenient.Headers = *lenientHdrs
	cfg.Lenient.ChunkedLength = *lenientCL
	if *maxHeaderSize > 0 {
		cfg.Headers.MaxSize = uint32(*maxHeaderSize)
	}

	d := NewDumper(stdout)
	p := httpparser.New(cfg, parserType)
	offset, err := d.Dump(p, data, *piece, *eof)
	if err != nil {
		logger.Printf("h1dump: offset %d: %s", offset, err)
		return 1
	}

	return 0
}

func parseType(name string) (httpparser.Type, error) {
	switch name {
	case "request", "req":
		return httpparser.Request, nil
	case "response", "resp":
		return httpparser.Response, nil
	case "either", "both":
		return httpparser.Either, nil
	default:
		return 0, fmt.Errorf("unknown message type: %q", name)
	}
}
