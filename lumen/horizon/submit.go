package horizon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/lumenpay/lib-lumen/lumen/log"
	"github.com/lumenpay/lib-lumen/lumen/outcome"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// fallbackRejection is reported when a failure response carries no usable
// reason at all.
const fallbackRejection = "Transaction failed"

// transactionHashPattern matches the 64-hex transaction identifier.
var transactionHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// submissionResponse is the submission endpoint's JSON shape, both the
// success and the failure variants.
type submissionResponse struct {
	Hash   string `json:"hash"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}

// Submit posts a signed envelope to the submission endpoint and classifies
// the response. The network validates and includes synchronously; there is
// no separate confirmation step. Submission is never retried here.
func (c *Client) Submit(ctx context.Context, signedEnvelope string) outcome.Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "horizon.submit",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	form := url.Values{"tx": {signedEnvelope}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transactions", strings.NewReader(form.Encode()))
	if err != nil {
		return outcome.TransportFailure(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		span.RecordError(err)

		return outcome.TransportFailure(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)

		return outcome.TransportFailure(err)
	}

	result := InterpretSubmission(body)
	c.logSubmission(ctx, result)

	return result
}

// InterpretSubmission classifies a raw submission response body.
//
// Presence of a well-formed transaction hash means success. Otherwise the
// human-readable reason is drawn in priority order: per-transaction result
// code, first per-operation result code, generic detail, generic title,
// fixed fallback. The result-codes field, when present, always wins.
func InterpretSubmission(body []byte) outcome.Result {
	var parsed submissionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return outcome.Malformed("", err)
	}

	if parsed.Hash != "" {
		if !transactionHashPattern.MatchString(parsed.Hash) {
			return outcome.Malformed("the network returned a malformed transaction hash", nil)
		}

		return outcome.Success(parsed.Hash)
	}

	codes := parsed.Extras.ResultCodes

	switch {
	case codes.Transaction != "":
		return outcome.Rejected(codes.Transaction)
	case len(codes.Operations) > 0 && codes.Operations[0] != "":
		return outcome.Rejected(codes.Operations[0])
	case parsed.Detail != "":
		return outcome.Rejected(parsed.Detail)
	case parsed.Title != "":
		return outcome.Rejected(parsed.Title)
	default:
		return outcome.Rejected(fallbackRejection)
	}
}

func (c *Client) logSubmission(ctx context.Context, result outcome.Result) {
	if result.Successful() {
		c.logger.Log(ctx, log.LevelInfo, "transaction included",
			log.String("hash", result.Hash),
		)

		return
	}

	c.logger.Log(ctx, log.LevelWarn, "transaction not included",
		log.String("kind", string(result.Kind)),
		log.String("reason", result.Message),
	)
}
