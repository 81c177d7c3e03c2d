package requestgen

import (
	"strconv"
	"strings"
)

// Headers returns n header lines, the last one is always Host.
func Headers(n int) []string {
	hdrs := make([]string, 0, n)

	for i := 0; i < n-1; i++ {
		hdrs = append(hdrs, "some-random-header-name-nobody-cares-about"+strconv.Itoa(i)+": "+strings.Repeat("b", 100))
	}

	return append(hdrs, "Host: localhost")
}

func HeadersBlock(hdrs []string) (buff []byte) {
	for _, line := range hdrs {
		buff = append(buff, line+"\r\n"...)
	}

	return buff
}

func Generate(uri string, hdrs []string) (request []byte) {
	request = append(request, "GET /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// Pipeline repeats the request n times, as a client would send them over a single
// keep-alive connection.
func Pipeline(request []byte, n int) []byte {
	return []byte(strings.Repeat(string(request), n))
}
