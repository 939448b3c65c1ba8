package model

// Transport represents the transport-level result of a probe attempt.
// Environmental failures (dead endpoints, timeouts) are values of this
// enum, never Go errors: the prober always returns an Outcome.
type Transport int

const (
	// TransportSuccess means a complete HTTP response was received.
	// The status code may still indicate failure (4xx/5xx).
	TransportSuccess Transport = iota

	// TransportTimeout means the request exceeded the configured timeout.
	TransportTimeout

	// TransportConnectionError means the connection could not be
	// established (DNS failure, connection refused, TLS failure).
	TransportConnectionError

	// TransportOtherError covers any other transport-level failure.
	TransportOtherError
)

// String returns a human-readable representation of the transport result.
func (t Transport) String() string {
	switch t {
	case TransportSuccess:
		return "success"
	case TransportTimeout:
		return "timeout"
	case TransportConnectionError:
		return "connection-error"
	case TransportOtherError:
		return "other-error"
	default:
		return "unknown"
	}
}

// Outcome is the raw result of attempting one probe.
// It is created once per probe attempt and never mutated afterwards.
//
// Design decision: Status code, content type and body are plain fields
// rather than an embedded *http.Response because:
//  1. The response body must be fully read and bounded before classification
//  2. Outcomes must be safe to pass between goroutines after creation
//  3. Tests can construct outcomes without a live server
type Outcome struct {
	// Target is the probe target this outcome belongs to.
	Target ProbeTarget

	// Transport indicates how the attempt ended at the transport level.
	Transport Transport

	// StatusCode is the HTTP status code. Only meaningful when
	// Transport is TransportSuccess.
	StatusCode int

	// ContentType is the Content-Type response header value.
	ContentType string

	// Body is the response body, truncated to the configured limit.
	Body []byte

	// Err holds the transport error message for non-success outcomes.
	Err string

	// FollowedForm is true when a FollowForm probe replaced this outcome's
	// response with the one from the discovered form action.
	FollowedForm bool

	// FinalURL is the URL the classified response came from. For plain
	// probes this equals the target URL; for FollowForm probes it is the
	// resolved form action.
	FinalURL string
}
