package config

type (
	Headers struct {
		// MaxSize limits the number of bytes a single header section may occupy. The counter
		// covers the start line together with the header fields and is reset when the body
		// begins. Trailer sections of chunked bodies are limited by the same value, but each one
		// is counted separately. Exceeding the limit is a fatal error.
		MaxSize uint32
	}

	Lenient struct {
		// Headers disables the validation of header value bytes. It also permits a
		// Content-Length alongside a Transfer-Encoding, whose final coding isn't chunked.
		Headers bool `test:"nullable"`
		// ChunkedLength permits Content-Length alongside `Transfer-Encoding: chunked`. The
		// Content-Length is ignored for framing in this case. Enabling this opens the door to
		// request smuggling in setups, where some hop doesn't follow the same rules, so think
		// twice.
		ChunkedLength bool `test:"nullable"`
	}
)

// Config holds per-parser limits and leniency switches. Every parser keeps its own copy, so
// parsers running in different goroutines never observe each other's settings.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because zero limits will most likely reject every message.
type Config struct {
	Headers Headers
	Lenient Lenient
	// Strict turns on the strict mode. Literal constants (HTTP/, CR before LF, etc.) are
	// verified byte by byte, header names may not contain spaces and the sets of allowed
	// URL and host characters are narrowed.
	Strict bool `test:"nullable"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Headers: Headers{
			// the same limit is used by most of the reverse proxies around.
			MaxSize: 80 * 1024,
		},
	}
}
