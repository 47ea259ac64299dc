package horizon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/lumenpay/lib-lumen/lumen/log"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCallTimeout bounds each HTTP call independently of the
	// envelope's validity window.
	DefaultCallTimeout = 25 * time.Second

	// maxReadAttempts caps backoff retries for idempotent account reads.
	maxReadAttempts = 3

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

var (
	// ErrEmptyBaseURL is returned when a client is constructed without a URL.
	ErrEmptyBaseURL = errors.New("horizon base URL is empty")
	// ErrAccountNotFound is returned when an account has no ledger record.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUnexpectedStatus is returned for statuses the account endpoints do
	// not define.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Client queries account state and submits signed envelopes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     log.Logger
	tracer     trace.Tracer
	breaker    *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCallTimeout sets the per-call timeout budget.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBreakerSettings replaces the default circuit breaker configuration.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(settings)
	}
}

// New creates a client for the ledger API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultCallTimeout,
		logger:     log.NewNop(),
		tracer:     otel.Tracer("lumen/horizon"),
		breaker:    gobreaker.NewCircuitBreaker(defaultBreakerSettings()),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "horizon",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// AccountDetail fetches an account record. A missing account is reported as
// ErrAccountNotFound; transport failures are retried with exponential
// backoff since the read is idempotent.
func (c *Client) AccountDetail(ctx context.Context, identity string) (Account, error) {
	return backoff.Retry(ctx, func() (Account, error) {
		account, err := c.fetchAccount(ctx, identity)
		if err != nil {
			// A 404 and an undefined status are authoritative answers; only
			// transport-level failures are worth a second attempt.
			if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrUnexpectedStatus) {
				return Account{}, backoff.Permanent(err)
			}

			return Account{}, err
		}

		return account, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxReadAttempts),
	)
}

// AccountExists reports whether an identity has a ledger record. Only an
// authoritative 404 means "does not exist"; transport failures propagate as
// errors rather than being guessed as non-existence.
func (c *Client) AccountExists(ctx context.Context, identity string) (bool, error) {
	_, err := c.AccountDetail(ctx, identity)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// AccountState performs the two independent reads feeding operation
// selection. They share no data dependency, so they are issued concurrently
// and joined before returning.
func (c *Client) AccountState(ctx context.Context, sender, recipient string) (State, error) {
	var (
		senderAccount   Account
		recipientExists bool
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		senderAccount, err = c.AccountDetail(groupCtx, sender)
		if err != nil {
			return fmt.Errorf("resolve sender: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		recipientExists, err = c.AccountExists(groupCtx, recipient)
		if err != nil {
			return fmt.Errorf("check recipient: %w", err)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return State{}, err
	}

	sequence, err := senderAccount.SequenceNumber()
	if err != nil {
		return State{}, fmt.Errorf("sender account: %w", err)
	}

	c.logger.Log(ctx, log.LevelDebug, "account state resolved",
		log.Int64("sender_sequence", sequence),
		log.Bool("recipient_exists", recipientExists),
	)

	return State{SenderSequence: sequence, RecipientExists: recipientExists}, nil
}

// fetchAccount performs one GET /accounts/{identity} call.
func (c *Client) fetchAccount(ctx context.Context, identity string) (Account, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "horizon.account",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ledger.account", identity)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts/"+identity, nil)
	if err != nil {
		return Account{}, fmt.Errorf("build account request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		span.RecordError(err)

		return Account{}, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusOK:
		var account Account
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&account); err != nil {
			return Account{}, fmt.Errorf("decode account response: %w", err)
		}

		return account, nil
	case resp.StatusCode == http.StatusNotFound:
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, identity)
	default:
		return Account{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

// do routes a request through the circuit breaker.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (any, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Log(req.Context(), log.LevelWarn, "horizon circuit breaker rejected request",
				log.Err(err),
			)
		}

		return nil, err
	}

	httpResp, ok := resp.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected breaker result type %T", resp)
	}

	return httpResp, nil
}
