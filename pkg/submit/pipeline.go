package submit

import (
	"context"
	"errors"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/rs/zerolog"

	"github.com/NautilusOSS/envoi-contracts/pkg/compose"
	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
)

// Config configures a Pipeline.
type Config struct {
	Client ledger.Client
	// WaitRounds bounds the confirmation wait. Zero uses
	// ledger.DefaultWaitRounds.
	WaitRounds uint64
	// AllowUnnamedResources lets simulation resolve references the group
	// did not name.
	AllowUnnamedResources bool
	Logger                *zerolog.Logger
}

// Pipeline submits composed groups.
type Pipeline struct {
	client                ledger.Client
	waitRounds            uint64
	allowUnnamedResources bool
	logger                zerolog.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(config Config) (*Pipeline, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("ledger client is required")
	}
	waitRounds := config.WaitRounds
	if waitRounds == 0 {
		waitRounds = ledger.DefaultWaitRounds
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Pipeline{
		client:                config.Client,
		waitRounds:            waitRounds,
		allowUnnamedResources: config.AllowUnnamedResources,
		logger:                logger,
	}, nil
}

// Client returns the ledger client.
func (p *Pipeline) Client() ledger.Client {
	return p.client
}

// Submit simulates or sends group depending on options. A failed simulation
// returns its report together with a *RejectedError.
func (p *Pipeline) Submit(ctx context.Context, group *compose.AtomicGroup, options Options, signers ...Signer) (Outcome, error) {
	if options.Simulate {
		report, err := p.Simulate(ctx, group)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{DryRun: report}, report.Err()
	}

	receipts, err := p.Send(ctx, group, signers...)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Receipts: receipts}, nil
}

// Simulate dry-runs group without signatures. It never broadcasts and does
// not consume the group.
func (p *Pipeline) Simulate(ctx context.Context, group *compose.AtomicGroup) (*DryRunReport, error) {
	if group == nil || len(group.Transactions) == 0 {
		return nil, fmt.Errorf("group is empty")
	}

	signed := make([]types.SignedTxn, len(group.Transactions))
	for index, txn := range group.Transactions {
		signed[index] = types.SignedTxn{Txn: txn}
	}

	result, err := p.client.Simulate(ctx, ledger.SimulateRequest{
		Transactions:          signed,
		AllowEmptySignatures:  true,
		AllowUnnamedResources: p.allowUnnamedResources,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to simulate group: %w", err)
	}

	report := &DryRunReport{
		Round:          result.LastRound,
		FailureMessage: result.FailureMessage,
		FailedAt:       result.FailedAt,
		Transactions:   make([]SimulatedTransaction, len(group.Transactions)),
		Unnamed:        result.Unnamed,
	}
	txIDs := group.TxIDs()
	for index := range group.Transactions {
		simulated := SimulatedTransaction{
			Index: index,
			TxID:  txIDs[index],
			Role:  group.Members[index].Role,
			Label: memberLabel(group, index),
		}
		if index < len(result.Transactions) {
			simulated.Logs = result.Transactions[index].Logs
			simulated.Return = abiReturnOrNil(simulated.Logs)
		}
		report.Transactions[index] = simulated
	}

	event := p.logger.Debug()
	if report.Failed() {
		event = p.logger.Info().Str("failure", report.FailureMessage)
	}
	event.Uint64("round", report.Round).Int("txns", len(group.Transactions)).Msg("simulated group")

	return report, nil
}

// Send signs, broadcasts and confirms group. It returns one receipt per
// transaction in group order, or an error and no receipts.
func (p *Pipeline) Send(ctx context.Context, group *compose.AtomicGroup, signers ...Signer) ([]Receipt, error) {
	if group == nil || len(group.Transactions) == 0 {
		return nil, fmt.Errorf("group is empty")
	}
	if group.Consumed() {
		return nil, ErrGroupConsumed
	}

	bySender := make(map[types.Address]Signer, len(signers))
	for _, signer := range signers {
		if signer != nil {
			bySender[signer.Address()] = signer
		}
	}

	txIDs := make([]string, len(group.Transactions))
	raw := make([]byte, 0, 256*len(group.Transactions))
	for index, txn := range group.Transactions {
		signer, ok := bySender[txn.Sender]
		if !ok {
			return nil, &SigningError{Index: index, Sender: txn.Sender.String()}
		}
		txID, signed, err := signer.SignTransaction(txn)
		if err != nil {
			return nil, &SigningError{Index: index, Sender: txn.Sender.String(), Err: err}
		}
		if expected := crypto.GetTxID(txn); txID != expected {
			return nil, &SigningError{Index: index, Sender: txn.Sender.String(), Err: fmt.Errorf("signer returned txid %s, expected %s", txID, expected)}
		}
		txIDs[index] = txID
		raw = append(raw, signed...)
	}

	if !group.Consume() {
		return nil, ErrGroupConsumed
	}

	p.logger.Debug().
		Int("txns", len(txIDs)).
		Uint64("fee", group.Fee).
		Str("anchor", txIDs[group.AnchorIndex]).
		Msg("broadcasting group")

	if _, err := p.client.SendRawTransaction(ctx, raw); err != nil {
		message := err.Error()
		if isLogicRejection(message) {
			return nil, &RejectedError{Message: message, Err: err}
		}
		return nil, &BroadcastError{Message: message, Err: err}
	}

	confirmed, err := ledger.WaitForConfirmation(ctx, p.client, txIDs, p.waitRounds)
	if err != nil {
		var poolErr *ledger.PoolError
		var timeoutErr *ledger.TimeoutError
		switch {
		case errors.As(err, &poolErr):
			return nil, &RejectedError{TxID: poolErr.TxID, Message: poolErr.Message, Err: err}
		case errors.As(err, &timeoutErr):
			p.logger.Warn().Strs("pending", timeoutErr.Pending).Uint64("round", timeoutErr.LastRound).Msg("confirmation timed out")
			return nil, &ConfirmationTimeoutError{Pending: timeoutErr.Pending, LastRound: timeoutErr.LastRound, Err: err}
		default:
			return nil, err
		}
	}

	receipts := make([]Receipt, len(txIDs))
	for index, txID := range txIDs {
		info := confirmed[txID]
		receipts[index] = Receipt{
			Index:          index,
			TxID:           txID,
			Role:           group.Members[index].Role,
			Label:          memberLabel(group, index),
			ConfirmedRound: info.ConfirmedRound,
			Logs:           info.Logs,
			Return:         abiReturnOrNil(info.Logs),
		}
	}

	p.logger.Info().
		Str("txid", txIDs[group.AnchorIndex]).
		Uint64("round", receipts[group.AnchorIndex].ConfirmedRound).
		Int("txns", len(receipts)).
		Msg("group confirmed")

	return receipts, nil
}

func memberLabel(group *compose.AtomicGroup, index int) string {
	member := group.Members[index]
	if member.Operation < 0 || member.Operation >= len(group.Operations) {
		return member.Role.String()
	}
	label := group.Operations[member.Operation].Label
	if member.Role == compose.RolePayment {
		return label + ":payment"
	}
	return label
}
