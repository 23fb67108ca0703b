package source

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a fetch problem for the alert taxonomy.
type ErrorKind string

const (
	KindHTTP ErrorKind = "http"
	KindData ErrorKind = "data"
)

// FetchError is a data-quality or transport problem encountered while talking
// to an upstream source. It is a value, not control flow: collectors accumulate
// them and the orchestration loop decides whether to alert or propagate.
type FetchError struct {
	Kind    ErrorKind
	Code    int
	URL     string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error %d: %s (%s)", e.Kind, e.Code, e.Message, e.URL)
}

// NotFound reports whether the error means the resource does not exist
// upstream. A 404 is expected in some contexts (undiscussed-number
// exploration) and alert-worthy in others; the caller decides.
func (e *FetchError) NotFound() bool {
	return e.Kind == KindHTTP && e.Code == http.StatusNotFound
}

func HTTPError(code int, url string, message string) *FetchError {
	return &FetchError{Kind: KindHTTP, Code: code, URL: url, Message: message}
}

func DataError(code int, url string, message string) *FetchError {
	return &FetchError{Kind: KindData, Code: code, URL: url, Message: message}
}
