package route

import "strings"

// Context is the flat transport-attribute map the dispatcher supplies
// with each match attempt: request method, TLS indicator, port, accept
// header, and arbitrary named server or environment values. The core
// never reads global process state; everything it knows about the
// request comes from this map.
type Context map[string]string

// Well-known context keys, named after their CGI environment
// counterparts.
const (
	// KeyMethod holds the request method, e.g. "GET".
	KeyMethod = "REQUEST_METHOD"

	// KeyAccept holds the raw accept header value.
	KeyAccept = "HTTP_ACCEPT"

	// KeyTLS holds the TLS indicator; see Context.Secure.
	KeyTLS = "HTTPS"

	// KeyPort holds the server port as a decimal string.
	KeyPort = "SERVER_PORT"
)

// Method returns the request method, upper-cased.
func (c Context) Method() string {
	return strings.ToUpper(c[KeyMethod])
}

// Accept returns the raw accept header, empty when absent.
func (c Context) Accept() string {
	return c[KeyAccept]
}

// Secure reports the request's actual secure-transport state: true
// when the TLS indicator is active or the server port is 443.
func (c Context) Secure() bool {
	switch strings.ToLower(c[KeyTLS]) {
	case "on", "1", "true", "yes":
		return true
	}
	return c[KeyPort] == "443"
}
