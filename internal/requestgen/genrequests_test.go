package requestgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	hdrs := Headers(3)
	require.Len(t, hdrs, 3)
	require.Equal(t, "Host: localhost", hdrs[2])

	request := Generate("hello", hdrs)
	require.True(t, bytes.HasPrefix(request, []byte("GET /hello HTTP/1.1\r\n")))
	require.True(t, bytes.HasSuffix(request, []byte("Host: localhost\r\n\r\n")))
	require.Equal(t, 5, bytes.Count(request, []byte("\r\n")))

	pipeline := Pipeline(request, 5)
	require.Len(t, pipeline, 5*len(request))
}
