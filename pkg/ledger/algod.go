package ledger

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/rs/zerolog"

	"github.com/NautilusOSS/envoi-contracts/pkg/shared"
)

// Config selects the algod node.
type Config struct {
	Network string
	BaseURL string
	Token   string
	Logger  *zerolog.Logger
}

// Algod implements Client on top of the Algorand SDK algod client.
type Algod struct {
	client  *algod.Client
	baseURL string
	logger  zerolog.Logger
}

// NewAlgod creates a new Algod client.
func NewAlgod(config Config) (*Algod, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = shared.DefaultAlgodURL(network)
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid algod base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid algod base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return nil, fmt.Errorf("invalid algod base URL: host is required")
	}

	client, err := algod.MakeClient(baseURL, config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create algod client: %w", err)
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Algod{
		client:  client,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "algod").Logger(),
	}, nil
}

// BaseURL returns the node URL.
func (a *Algod) BaseURL() string {
	return a.baseURL
}

// SuggestedParams returns the node's current transaction parameters.
func (a *Algod) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	params, err := a.client.SuggestedParams().Do(ctx)
	if err != nil {
		return types.SuggestedParams{}, fmt.Errorf("failed to get suggested params: %w", err)
	}
	return params, nil
}

// SendRawTransaction broadcasts encoded signed transactions.
func (a *Algod) SendRawTransaction(ctx context.Context, raw []byte) (string, error) {
	txID, err := a.client.SendRawTransaction(raw).Do(ctx)
	if err != nil {
		return "", err
	}
	a.logger.Debug().Str("txid", txID).Int("bytes", len(raw)).Msg("sent raw transaction")
	return txID, nil
}

// PendingTransaction returns the pending state of a transaction.
func (a *Algod) PendingTransaction(ctx context.Context, txID string) (PendingTransaction, error) {
	info, _, err := a.client.PendingTransactionInformation(txID).Do(ctx)
	if err != nil {
		return PendingTransaction{}, err
	}
	return PendingTransaction{
		ConfirmedRound: info.ConfirmedRound,
		PoolError:      info.PoolError,
		Logs:           info.Logs,
	}, nil
}

// Status returns the last round the node has seen.
func (a *Algod) Status(ctx context.Context) (uint64, error) {
	status, err := a.client.Status().Do(ctx)
	if err != nil {
		return 0, err
	}
	return status.LastRound, nil
}

// StatusAfterBlock blocks until the node passes round and returns the new
// last round.
func (a *Algod) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	status, err := a.client.StatusAfterBlock(round).Do(ctx)
	if err != nil {
		return 0, err
	}
	return status.LastRound, nil
}

// Simulate evaluates a group without committing it.
func (a *Algod) Simulate(ctx context.Context, request SimulateRequest) (SimulateResult, error) {
	response, err := a.client.SimulateTransaction(models.SimulateRequest{
		TxnGroups: []models.SimulateRequestTransactionGroup{
			{Txns: request.Transactions},
		},
		AllowEmptySignatures:  request.AllowEmptySignatures,
		AllowUnnamedResources: request.AllowUnnamedResources,
	}).Do(ctx)
	if err != nil {
		return SimulateResult{}, err
	}

	result := SimulateResult{LastRound: response.LastRound}
	if len(response.TxnGroups) == 0 {
		return result, fmt.Errorf("simulate response carried no transaction groups")
	}
	group := response.TxnGroups[0]
	result.FailureMessage = group.FailureMessage
	result.FailedAt = group.FailedAt
	result.Transactions = make([]SimulatedTransaction, len(group.TxnResults))
	for index, txnResult := range group.TxnResults {
		result.Transactions[index] = SimulatedTransaction{Logs: txnResult.TxnResult.Logs}
	}
	result.Unnamed, err = unnamedResources(group.UnnamedResourcesAccessed)
	if err != nil {
		return result, err
	}

	a.logger.Debug().
		Uint64("round", result.LastRound).
		Int("txns", len(request.Transactions)).
		Bool("failed", result.Failed()).
		Msg("simulated group")
	return result, nil
}

func unnamedResources(accessed models.SimulateUnnamedResourcesAccessed) (Resources, error) {
	resources := Resources{
		Apps:         accessed.Apps,
		Assets:       accessed.Assets,
		ExtraBoxRefs: accessed.ExtraBoxRefs,
	}
	for _, account := range accessed.Accounts {
		address, err := types.DecodeAddress(account)
		if err != nil {
			return resources, fmt.Errorf("failed to decode unnamed account %q: %w", account, err)
		}
		resources.Accounts = append(resources.Accounts, address)
	}
	for _, box := range accessed.Boxes {
		resources.Boxes = append(resources.Boxes, BoxResource{App: box.App, Name: box.Name})
	}
	return resources, nil
}
