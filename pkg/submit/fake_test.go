package submit

import (
	"context"
	"errors"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
)

type fakeLedger struct {
	mu           sync.Mutex
	round        uint64
	sent         [][]byte
	sentAt       uint64
	simulations  int
	sendErr      error
	poolError    string
	neverConfirm bool
	logs         [][]byte
	simulate     ledger.SimulateResult
}

func (f *fakeLedger) SuggestedParams(context.Context) (types.SuggestedParams, error) {
	return types.SuggestedParams{}, nil
}

func (f *fakeLedger) SendRawTransaction(_ context.Context, raw []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, raw)
	f.sentAt = f.round
	return "TXID", nil
}

func (f *fakeLedger) PendingTransaction(context.Context, string) (ledger.PendingTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ledger.PendingTransaction{}, errors.New("unknown transaction")
	}
	if f.poolError != "" {
		return ledger.PendingTransaction{PoolError: f.poolError}, nil
	}
	if f.neverConfirm || f.round <= f.sentAt {
		return ledger.PendingTransaction{}, nil
	}
	return ledger.PendingTransaction{ConfirmedRound: f.sentAt + 1, Logs: f.logs}, nil
}

func (f *fakeLedger) Status(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.round, nil
}

func (f *fakeLedger) StatusAfterBlock(_ context.Context, round uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.round = round + 1
	return f.round, nil
}

func (f *fakeLedger) Simulate(_ context.Context, request ledger.SimulateRequest) (ledger.SimulateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulations++
	result := f.simulate
	if result.Transactions == nil {
		result.Transactions = make([]ledger.SimulatedTransaction, len(request.Transactions))
		for index := range result.Transactions {
			result.Transactions[index] = ledger.SimulatedTransaction{Logs: f.logs}
		}
	}
	return result, nil
}

func (f *fakeLedger) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
