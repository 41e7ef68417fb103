package vns

import (
	"context"
	"errors"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
	"github.com/NautilusOSS/envoi-contracts/pkg/submit"
)

type fakeLedger struct {
	mu          sync.Mutex
	round       uint64
	sentAt      uint64
	sent        [][]byte
	simulations []ledger.SimulateRequest
	// respond builds the result of each simulation. Nil answers with no
	// failure and empty logs.
	respond func(request ledger.SimulateRequest) ledger.SimulateResult
}

func testParams() types.SuggestedParams {
	genesis := make([]byte, 32)
	genesis[0] = 0x56
	return types.SuggestedParams{
		GenesisID:       "voitest-v1",
		GenesisHash:     genesis,
		FirstRoundValid: 100,
		LastRoundValid:  1100,
		MinFee:          1000,
	}
}

func (f *fakeLedger) SuggestedParams(context.Context) (types.SuggestedParams, error) {
	return testParams(), nil
}

func (f *fakeLedger) SendRawTransaction(_ context.Context, raw []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	if f.round <= f.sentAt {
		return ledger.PendingTransaction{}, nil
	}
	return ledger.PendingTransaction{ConfirmedRound: f.sentAt + 1}, nil
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
	f.simulations = append(f.simulations, request)
	respond := f.respond
	f.mu.Unlock()

	var result ledger.SimulateResult
	if respond != nil {
		result = respond(request)
	}
	if result.Transactions == nil {
		result.Transactions = make([]ledger.SimulatedTransaction, len(request.Transactions))
	}
	return result, nil
}

func (f *fakeLedger) lastSimulation() []types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.simulations) == 0 {
		return nil
	}
	request := f.simulations[len(f.simulations)-1]
	txns := make([]types.Transaction, len(request.Transactions))
	for index, signed := range request.Transactions {
		txns[index] = signed.Txn
	}
	return txns
}

func (f *fakeLedger) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// returning answers every simulation with value as the first call's ABI
// return.
func returning(value []byte) func(ledger.SimulateRequest) ledger.SimulateResult {
	return func(request ledger.SimulateRequest) ledger.SimulateResult {
		txns := make([]ledger.SimulatedTransaction, len(request.Transactions))
		log := append(append([]byte(nil), submit.ReturnPrefix...), value...)
		txns[0] = ledger.SimulatedTransaction{Logs: [][]byte{[]byte("event"), log}}
		return ledger.SimulateResult{LastRound: 100, Transactions: txns}
	}
}
