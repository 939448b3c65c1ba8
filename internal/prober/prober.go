package prober

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ybenjamin/patentprobe/internal/config"
	"github.com/ybenjamin/patentprobe/internal/model"
	"github.com/ybenjamin/patentprobe/internal/parser"
)

// errTruncateLen caps transport error messages carried into outcome notes
// so reports stay scannable.
const errTruncateLen = 100

// Prober executes probe targets against the network.
//
// Design decision: We use a struct holding the http.Client rather than
// passing a client on each call because:
//  1. Client configuration (TLS policy, timeouts) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with a custom client
type Prober struct {
	// client is the HTTP client used for all probes.
	client *http.Client

	// timeout is the per-probe request timeout.
	timeout time.Duration

	// userAgent is the User-Agent header sent with every probe.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from unexpectedly large responses.
	maxBodySize int64

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithClient sets a custom HTTP client. The caller owns the client's
// transport configuration; the default skip-verify policy does not apply.
func WithClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// WithTimeout sets the per-probe request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(p *Prober) {
		if size > 0 {
			p.maxBodySize = size
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// New creates a Prober with the default transport policy.
//
// TLS certificate validation is DISABLED on the default transport. This
// is a deliberate, explicit trade-off: the probed endpoints are surveyed
// ad hoc for reachability and payload shape, and the prober is not a
// trust boundary. Several government endpoints in the built-in catalog
// present certificate chains that fail strict validation while still
// serving useful responses. Do not reuse this transport for anything
// that handles credentials or sensitive data.
func New(opts ...Option) *Prober {
	p := &Prober{
		timeout:     config.DefaultProbeTimeout,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		p.client = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // deliberate policy, see New
				},
			},
		}
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Probe executes one probe target and returns its outcome.
// It always returns a value: transport failures become typed outcomes,
// never errors. FollowForm targets get at most one extra request.
func (p *Prober) Probe(ctx context.Context, target model.ProbeTarget) model.Outcome {
	outcome := p.fetch(ctx, target, target.URL, target.Params)

	if target.Variant == model.VariantFollowForm && outcome.Transport == model.TransportSuccess {
		p.followForm(ctx, target, &outcome)
	}

	return outcome
}

// fetch performs a single GET and normalizes the result.
func (p *Prober) fetch(ctx context.Context, target model.ProbeTarget, rawURL string, params map[string]string) model.Outcome {
	outcome := model.Outcome{
		Target:   target,
		FinalURL: rawURL,
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		outcome.Transport = model.TransportOtherError
		outcome.Err = truncateErr(err)
		return outcome
	}

	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
		outcome.FinalURL = req.URL.String()
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, application/xml, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	p.logger.Debug("probing endpoint",
		"label", target.Label,
		"url", req.URL.String(),
		"variant", target.Variant.String(),
	)

	resp, err := p.client.Do(req)
	if err != nil {
		outcome.Transport = classifyTransportError(err)
		outcome.Err = truncateErr(err)
		p.logger.Debug("probe failed",
			"label", target.Label,
			"transport", outcome.Transport.String(),
			"error", outcome.Err,
		)
		return outcome
	}
	defer resp.Body.Close()

	outcome.Transport = model.TransportSuccess
	outcome.StatusCode = resp.StatusCode
	outcome.ContentType = resp.Header.Get("Content-Type")

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		// Keep what we have; status and content type alone are enough
		// for most classification rules.
		p.logger.Debug("body read truncated", "label", target.Label, "error", err)
	}
	outcome.Body = body

	return outcome
}

// followForm looks for a form action in the fetched body and, when one
// exists, issues one additional probe whose response replaces the
// outcome's status, content type and body. It does not recurse: the
// follow-up response is classified as-is even if it contains more forms.
func (p *Prober) followForm(ctx context.Context, target model.ProbeTarget, outcome *model.Outcome) {
	ps, err := parser.New(outcome.FinalURL)
	if err != nil {
		return
	}

	scan, err := ps.Parse(bytes.NewReader(outcome.Body))
	if err != nil || len(scan.FormActions) == 0 {
		return
	}

	action := scan.FormActions[0]
	p.logger.Debug("following form action",
		"label", target.Label,
		"action", action,
	)

	followed := p.fetch(ctx, target, action, nil)
	if followed.Transport != model.TransportSuccess {
		// The original response is still the best signal we have.
		return
	}

	outcome.StatusCode = followed.StatusCode
	outcome.ContentType = followed.ContentType
	outcome.Body = followed.Body
	outcome.FinalURL = followed.FinalURL
	outcome.FollowedForm = true
}

// classifyTransportError maps a transport error to its outcome variant.
// Decision order matters: timeouts are also net.Errors, so the timeout
// checks come first.
func classifyTransportError(err error) model.Transport {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.TransportTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.TransportTimeout
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		var opErr *net.OpError
		if errors.As(urlErr.Err, &opErr) {
			return model.TransportConnectionError
		}
		var dnsErr *net.DNSError
		if errors.As(urlErr.Err, &dnsErr) {
			return model.TransportConnectionError
		}
		var tlsErr *tls.CertificateVerificationError
		if errors.As(urlErr.Err, &tlsErr) {
			return model.TransportConnectionError
		}
	}

	return model.TransportOtherError
}

// truncateErr renders an error message capped for report notes.
func truncateErr(err error) string {
	msg := err.Error()
	if len(msg) > errTruncateLen {
		return msg[:errTruncateLen] + "..."
	}
	return msg
}
