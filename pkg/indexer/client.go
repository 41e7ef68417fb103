package indexer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common"
	sdkindexer "github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"

	"github.com/NautilusOSS/envoi-contracts/pkg/shared"
)

// ErrNotFound is returned when the indexer has no record of the requested
// object.
var ErrNotFound = errors.New("not found")

// TokenHeader carries the indexer API token.
const TokenHeader = "X-Indexer-API-Token"

type Config struct {
	Network string
	BaseURL string
	Token   string
	Headers map[string]string
	// Transport overrides the HTTP transport. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper
}

type Client struct {
	baseURL string
	api     *sdkindexer.Client
}

// TransactionQuery filters account transaction history.
type TransactionQuery struct {
	Limit         uint64
	MinRound      uint64
	MaxRound      uint64
	TxType        string
	ApplicationID uint64
	// Pages bounds how many pages are followed. Zero follows every page.
	Pages int
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = shared.DefaultIndexerURL(network)
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid indexer base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid indexer base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid indexer base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	keys := make([]string, 0, len(config.Headers))
	for key := range config.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	headers := make([]*common.Header, 0, len(keys))
	for _, key := range keys {
		headers = append(headers, &common.Header{Key: key, Value: config.Headers[key]})
	}

	api, err := sdkindexer.MakeClientWithTransport(baseURL, strings.TrimSpace(config.Token), headers, config.Transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer client: %w", err)
	}

	return &Client{baseURL: baseURL, api: api}, nil
}

// BaseURL returns the indexer URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTransaction returns a confirmed transaction, or nil when the indexer
// does not know it yet.
func (c *Client) GetTransaction(ctx context.Context, txID string) (*Transaction, error) {
	normalized := strings.TrimSpace(txID)
	if normalized == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}

	response, err := c.api.LookupTransaction(normalized).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("indexer transaction lookup failed: %w", err)
	}

	txn := response.Transaction
	return &txn, nil
}

// LookupTransactions looks up every txID and returns the confirmed ones by
// ID. Transactions the indexer does not know are absent from the map.
func (c *Client) LookupTransactions(ctx context.Context, txIDs []string) (map[string]Transaction, error) {
	found := make(map[string]Transaction, len(txIDs))
	for _, txID := range txIDs {
		txn, err := c.GetTransaction(ctx, txID)
		if err != nil {
			return nil, err
		}
		if txn != nil {
			found[txID] = *txn
		}
	}
	return found, nil
}

// GetAccountTransactions returns the transaction history of an account,
// newest first, following next tokens.
func (c *Client) GetAccountTransactions(
	ctx context.Context,
	address string,
	query TransactionQuery,
) ([]Transaction, error) {
	normalized := strings.TrimSpace(address)
	if normalized == "" {
		return nil, fmt.Errorf("address is required")
	}

	result := make([]Transaction, 0)
	next := ""
	for page := 0; query.Pages <= 0 || page < query.Pages; page++ {
		search := c.api.SearchForTransactions().AddressString(normalized)
		if query.Limit > 0 {
			search = search.Limit(query.Limit)
		}
		if query.MinRound > 0 {
			search = search.MinRound(query.MinRound)
		}
		if query.MaxRound > 0 {
			search = search.MaxRound(query.MaxRound)
		}
		if query.TxType != "" {
			search = search.TxType(query.TxType)
		}
		if query.ApplicationID > 0 {
			search = search.ApplicationId(query.ApplicationID)
		}
		if next != "" {
			search = search.NextToken(next)
		}

		response, err := search.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("indexer transaction search failed: %w", err)
		}
		result = append(result, response.Transactions...)

		if response.NextToken == "" || len(response.Transactions) == 0 {
			break
		}
		next = response.NextToken
	}

	return result, nil
}

// GetBox returns the value of an application box, or ErrNotFound.
func (c *Client) GetBox(ctx context.Context, appID uint64, name []byte) ([]byte, error) {
	if appID == 0 {
		return nil, fmt.Errorf("application ID is required")
	}

	box, err := c.api.LookupApplicationBoxByIDAndName(appID, name).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("box %q of application %d: %w", name, appID, ErrNotFound)
		}
		return nil, fmt.Errorf("indexer box lookup failed: %w", err)
	}
	return box.Value, nil
}

// GetApplicationLogs returns the logs an application emitted in one
// transaction.
func (c *Client) GetApplicationLogs(ctx context.Context, appID uint64, txID string) ([][]byte, error) {
	if appID == 0 {
		return nil, fmt.Errorf("application ID is required")
	}

	response, err := c.api.LookupApplicationLogsByID(appID).Txid(strings.TrimSpace(txID)).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("indexer log lookup failed: %w", err)
	}

	var logs [][]byte
	for _, entry := range response.LogData {
		logs = append(logs, entry.Logs...)
	}
	return logs, nil
}

// isNotFound reports a 404 from the indexer. The SDK wraps every HTTP
// failure in a plain error whose text starts with the status.
func isNotFound(err error) bool {
	return strings.HasPrefix(err.Error(), "HTTP 404")
}
