package lumen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lumenpay/lib-lumen/lumen/envelope"
	"github.com/lumenpay/lib-lumen/lumen/horizon"
	"github.com/lumenpay/lib-lumen/lumen/log"
	"github.com/lumenpay/lib-lumen/lumen/outcome"
	"github.com/lumenpay/lib-lumen/lumen/signer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNilLedger is returned when the pipeline is built without a ledger
	// client.
	ErrNilLedger = errors.New("ledger client is nil")
	// ErrNilSigner is returned when the pipeline is built without a signer.
	ErrNilSigner = errors.New("signer is nil")
	// ErrEmptyNetwork is returned when the network passphrase is missing.
	ErrEmptyNetwork = errors.New("network passphrase is empty")
	// ErrPipelineBusy is returned when a Send is initiated while another is
	// pending. Serializing submissions prevents double-spend through
	// duplicate sequence reuse.
	ErrPipelineBusy = errors.New("a payment is already in flight")
)

// Ledger is the capability boundary to the network's query/submission API.
// *horizon.Client implements it.
type Ledger interface {
	AccountState(ctx context.Context, sender, recipient string) (horizon.State, error)
	Submit(ctx context.Context, signedEnvelope string) outcome.Result
}

// Pipeline runs one payment at a time, strictly stage by stage.
type Pipeline struct {
	ledger   Ledger
	signer   signer.Signer
	network  Network
	logger   log.Logger
	tracer   trace.Tracer
	observer func(State)

	busy atomic.Bool

	mu         sync.RWMutex
	lastResult *outcome.Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver registers a callback invoked on every state transition. It
// runs synchronously on the pipeline goroutine; presentation layers should
// hand off quickly.
func WithObserver(observer func(State)) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// WithTracer sets the tracer used for the per-run root span.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// New creates a payment pipeline over the given collaborators.
func New(ledger Ledger, sgn signer.Signer, net Network, opts ...Option) (*Pipeline, error) {
	if ledger == nil {
		return nil, ErrNilLedger
	}

	if sgn == nil {
		return nil, ErrNilSigner
	}

	if strings.TrimSpace(net.Passphrase) == "" {
		return nil, ErrEmptyNetwork
	}

	pipeline := &Pipeline{
		ledger:  ledger,
		signer:  sgn,
		network: net,
		logger:  log.NewNop(),
		tracer:  otel.Tracer("lumen/pipeline"),
	}

	for _, opt := range opts {
		opt(pipeline)
	}

	return pipeline, nil
}

// Connect verifies the signer is reachable and requests authorization,
// returning the identity the signer agreed to act for. Presentation layers
// call this once before offering the payment form.
func (p *Pipeline) Connect(ctx context.Context) (string, error) {
	available, err := p.signer.Available(ctx)
	if err != nil {
		return "", err
	}

	if !available {
		return "", signer.ErrUnavailable
	}

	identity, err := p.signer.RequestAuthorization(ctx)
	if err != nil {
		return "", err
	}

	p.logger.Log(ctx, log.LevelInfo, "signer authorized",
		log.String("identity", identity),
	)

	return identity, nil
}

// Send runs the full pipeline for one intent and returns its classified
// outcome. Only one run may be in flight at a time; a concurrent Send
// returns ErrPipelineBusy without touching the network. All other failures
// are reported through the returned Result, never as an error.
func (p *Pipeline) Send(ctx context.Context, intent PaymentIntent) (outcome.Result, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return outcome.Result{}, ErrPipelineBusy
	}
	defer p.busy.Store(false)

	runID := uuid.NewString()
	logger := p.logger.With(log.String("run_id", runID))

	ctx, span := p.tracer.Start(ctx, "pipeline.send",
		trace.WithAttributes(attribute.String("run_id", runID)),
	)
	defer span.End()

	result := p.run(ctx, logger, intent)

	p.setLastResult(result)

	if result.Successful() {
		p.setState(StateCompleted)
		span.SetAttributes(attribute.String("tx_hash", result.Hash))
	} else {
		p.setState(StateFailed)
		span.SetStatus(codes.Error, string(result.Kind))

		logger.Log(ctx, log.LevelWarn, "payment failed",
			log.String("kind", string(result.Kind)),
			log.String("reason", result.Message),
		)
	}

	return result, nil
}

// run executes the stage sequence, stopping at the first failing stage.
func (p *Pipeline) run(ctx context.Context, logger log.Logger, intent PaymentIntent) outcome.Result {
	p.setState(StateValidating)

	if err := intent.Validate(); err != nil {
		return outcome.ValidationFailed(err.Error())
	}

	p.setState(StateResolvingAccount)

	state, err := p.ledger.AccountState(ctx, intent.Sender, intent.Recipient)
	if err != nil {
		if errors.Is(err, horizon.ErrAccountNotFound) {
			return outcome.AccountNotFound(intent.Sender)
		}

		return outcome.TransportFailure(err)
	}

	p.setState(StateSelectingOperation)
	p.setState(StateAssembling)

	unsigned, err := envelope.Build(envelope.Params{
		Source:            intent.Sender,
		Sequence:          state.SenderSequence,
		Destination:       intent.Recipient,
		Amount:            intent.Amount,
		DestinationExists: state.RecipientExists,
		NetworkPassphrase: p.network.Passphrase,
		BaseFee:           p.network.BaseFee,
		Timeout:           p.network.EnvelopeTimeout,
	})
	if err != nil {
		return outcome.ValidationFailed(err.Error())
	}

	logger.Log(ctx, log.LevelDebug, "envelope assembled",
		log.String("operation", string(unsigned.Kind)),
		log.Int64("sequence", unsigned.Sequence),
	)

	p.setState(StateAwaitingSignature)

	signed, err := p.signer.Sign(ctx, unsigned.XDR, unsigned.NetworkPassphrase, intent.Sender)
	if err != nil {
		if errors.Is(err, signer.ErrUnavailable) {
			return outcome.SignerUnavailable(err)
		}

		// Anything that is not "unavailable" is a refusal; the message is
		// opaque and user-displayable.
		message := signer.DeniedMessage(err)
		if message == "" {
			message = err.Error()
		}

		return outcome.SignerDenied(message)
	}

	p.setState(StateSubmitting)

	if remaining := time.Until(unsigned.ExpiresAt); remaining <= 0 {
		logger.Log(ctx, log.LevelWarn, "envelope expired before submission",
			log.Duration("past_expiry", -remaining),
		)
	}

	return p.ledger.Submit(ctx, signed)
}

// LastResult returns the most recent completed run's outcome.
func (p *Pipeline) LastResult() (outcome.Result, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.lastResult == nil {
		return outcome.Result{}, false
	}

	return *p.lastResult, true
}

func (p *Pipeline) setLastResult(result outcome.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastResult = &result
}

func (p *Pipeline) setState(state State) {
	if p.observer != nil {
		p.observer(state)
	}
}
