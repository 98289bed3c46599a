package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sirupsen/logrus"

	restapi "github.com/hedisam/txchain/api/rest"
	"github.com/hedisam/txchain/internal/ledger"
)

const (
	// DefaultRetryTimeout bounds the time spent retrying a request that fails to reach the node.
	DefaultRetryTimeout = 3 * time.Second
)

// APIError is a non 2xx response from the node.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("node responded with status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the node's user facing messages back onto the ledger errors they stand for.
func (e *APIError) Unwrap() error {
	switch e.Message {
	case restapi.NotEnoughFundsMessage:
		return ledger.ErrInsufficientFunds
	case restapi.InvalidTransactionMessage:
		return ledger.ErrInvalidRecord
	default:
		return nil
	}
}

type Option func(*Client)

// WithHTTPClient sets the http client used to reach the node.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetryTimeout sets how long transport failures are retried for. Zero disables retries.
func WithRetryTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.retryTimeout = d
		}
	}
}

// Client talks to a txchain node over its HTTP API.
type Client struct {
	logger       *logrus.Logger
	httpClient   *http.Client
	nodeAddr     string
	retryTimeout time.Duration
}

func New(logger *logrus.Logger, nodeAddr string, opts ...Option) *Client {
	c := &Client{
		logger:       logger,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		nodeAddr:     strings.TrimSuffix(nodeAddr, "/"),
		retryTimeout: DefaultRetryTimeout,
	}
	for opt := range slices.Values(opts) {
		opt(c)
	}

	return c
}

// Balance returns the balance of addr. addr is sent as given and validated by the node.
func (c *Client) Balance(ctx context.Context, addr string) (int64, error) {
	var resp restapi.GetBalanceResponse
	err := c.do(ctx, http.MethodGet, "/balance/"+url.PathEscape(addr), nil, &resp)
	if err != nil {
		return 0, err
	}

	return resp.Balance, nil
}

// Balances returns the balance of every account known to the node.
func (c *Client) Balances(ctx context.Context) (ledger.Balances, error) {
	var resp restapi.ListBalancesResponse
	err := c.do(ctx, http.MethodGet, "/balances", nil, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Balances, nil
}

// Transactions returns the accepted transactions in chain order.
func (c *Client) Transactions(ctx context.Context) ([]ledger.Record, error) {
	var resp restapi.ListTransactionsResponse
	err := c.do(ctx, http.MethodGet, "/transactions", nil, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Transactions, nil
}

// Tail returns the id of the last accepted transaction, nil for an empty ledger.
func (c *Client) Tail(ctx context.Context) (*uint64, error) {
	var resp restapi.GetTailResponse
	err := c.do(ctx, http.MethodGet, "/transactions/tail", nil, &resp)
	if err != nil {
		return nil, err
	}

	return resp.ID, nil
}

// Submit sends a signed record to the node and returns the sender's balance after the transfer.
func (c *Client) Submit(ctx context.Context, r ledger.Record) (int64, error) {
	var resp restapi.SendResponse
	err := c.do(ctx, http.MethodPost, "/send", r, &resp)
	if err != nil {
		return 0, err
	}

	return resp.Balance, nil
}

// Send builds a transfer linked to the current tail, signs it with key and submits it. The submitted record is
// returned along with the sender's new balance.
func (c *Client) Send(ctx context.Context, key *secp256k1.PrivateKey, recipient string, amount int64) (ledger.Record, int64, error) {
	tail, err := c.Tail(ctx)
	if err != nil {
		return ledger.Record{}, 0, fmt.Errorf("could not get ledger tail: %w", err)
	}

	r := ledger.Record{
		ID:        0,
		PrevID:    tail,
		Recipient: recipient,
		Amount:    amount,
	}
	if tail != nil {
		r.ID = *tail + 1
	}

	r, err = ledger.Sign(r, key)
	if err != nil {
		return ledger.Record{}, 0, fmt.Errorf("could not sign record: %w", err)
	}

	balance, err := c.Submit(ctx, r)
	if err != nil {
		return r, 0, fmt.Errorf("could not submit record %d: %w", r.ID, err)
	}

	return r, balance, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
	}

	resp, err := c.doRequestWithRetry(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp restapi.Err
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &errResp) == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}

func (c *Client) doRequestWithRetry(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	logger := c.logger.WithContext(ctx).WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	})

	// the request is rebuilt on each attempt since a failed attempt may have consumed its body
	op := func() (*http.Response, error) {
		req, err := c.newRequest(ctx, method, path, payload)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, backoff.Permanent(fmt.Errorf("could not make http call: %w", err))
			}
			logger.WithError(err).Warn("Failed to make http request, retrying...")
			return nil, fmt.Errorf("http request failed: %w", err)
		}
		return resp, nil
	}

	return backoff.RetryWithData[*http.Response](op, backoff.WithContext(c.newBackOff(), ctx))
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.nodeAddr+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not make new request with context: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Content-Length", strconv.Itoa(len(payload)))
	}

	return req, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	if c.retryTimeout == 0 {
		return &backoff.StopBackOff{}
	}

	return backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(c.retryTimeout),
		backoff.WithMaxInterval(time.Second),
		backoff.WithInitialInterval(time.Millisecond*100),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.2),
	)
}
