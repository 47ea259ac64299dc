package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lumenpay/lib-lumen/lumen/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBridgeTimeout bounds each signer call independently of the
// envelope's own validity window.
const DefaultBridgeTimeout = 25 * time.Second

// ErrEmptyBridgeURL is returned when a bridge is constructed without a URL.
var ErrEmptyBridgeURL = errors.New("bridge base URL is empty")

// Bridge talks to a wallet daemon over HTTP using the conventional
// connected/access/sign JSON contract.
type Bridge struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     log.Logger
	tracer     trace.Tracer
}

var _ Signer = (*Bridge)(nil)

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithHTTPClient sets the HTTP client used for signer calls.
func WithHTTPClient(client *http.Client) BridgeOption {
	return func(b *Bridge) {
		if client != nil {
			b.httpClient = client
		}
	}
}

// WithTimeout sets the per-call timeout budget.
func WithTimeout(timeout time.Duration) BridgeOption {
	return func(b *Bridge) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) BridgeOption {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBridge creates a signer bridge for the wallet daemon at baseURL.
func NewBridge(baseURL string, opts ...BridgeOption) (*Bridge, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBridgeURL
	}

	bridge := &Bridge{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultBridgeTimeout,
		logger:     log.NewNop(),
		tracer:     otel.Tracer("lumen/signer"),
	}

	for _, opt := range opts {
		opt(bridge)
	}

	return bridge, nil
}

type connectedResponse struct {
	IsConnected bool `json:"isConnected"`
}

type accessResponse struct {
	Address string `json:"address"`
	Error   string `json:"error"`
}

type signRequest struct {
	Transaction       string `json:"transaction"`
	NetworkPassphrase string `json:"network_passphrase"`
	Address           string `json:"address"`
}

type signResponse struct {
	SignedTxXDR string `json:"signedTxXdr"`
	Error       string `json:"error"`
}

// Available reports whether the wallet daemon is connected.
func (b *Bridge) Available(ctx context.Context) (bool, error) {
	var parsed connectedResponse

	err := b.call(ctx, http.MethodGet, "/connected", nil, &parsed)
	if err != nil {
		return false, err
	}

	return parsed.IsConnected, nil
}

// RequestAuthorization asks the wallet for access and returns the identity
// it grants.
func (b *Bridge) RequestAuthorization(ctx context.Context) (string, error) {
	var parsed accessResponse

	err := b.call(ctx, http.MethodPost, "/access", struct{}{}, &parsed)
	if err != nil {
		return "", err
	}

	if parsed.Error != "" {
		b.logger.Log(ctx, log.LevelWarn, "signer refused authorization",
			log.String("reason", parsed.Error),
		)

		return "", Denied(parsed.Error)
	}

	if parsed.Address == "" {
		return "", fmt.Errorf("%w: access response carried no address", ErrUnavailable)
	}

	return parsed.Address, nil
}

// Sign submits the unsigned envelope and returns the signed envelope.
func (b *Bridge) Sign(ctx context.Context, envelopeXDR, networkPassphrase, identity string) (string, error) {
	var parsed signResponse

	err := b.call(ctx, http.MethodPost, "/sign", signRequest{
		Transaction:       envelopeXDR,
		NetworkPassphrase: networkPassphrase,
		Address:           identity,
	}, &parsed)
	if err != nil {
		return "", err
	}

	if parsed.Error != "" {
		b.logger.Log(ctx, log.LevelWarn, "signer refused to sign",
			log.String("reason", parsed.Error),
		)

		return "", Denied(parsed.Error)
	}

	if parsed.SignedTxXDR == "" {
		return "", fmt.Errorf("%w: sign response carried no envelope", ErrUnavailable)
	}

	return parsed.SignedTxXDR, nil
}

// call performs one bridge request with its own timeout budget and a client
// span. Transport-level failures are classified as ErrUnavailable; the
// pipeline never retries a signer call.
func (b *Bridge) call(ctx context.Context, method, path string, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	ctx, span := b.tracer.Start(ctx, "signer.bridge"+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.method", method)),
	)
	defer span.End()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode signer request: %w", err)
		}

		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build signer request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)

		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: signer returned status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode signer response: %w", ErrUnavailable, err)
	}

	return nil
}
