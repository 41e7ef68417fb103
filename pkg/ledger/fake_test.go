package ledger

import (
	"context"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

type fakeClient struct {
	mu        sync.Mutex
	round     uint64
	confirmAt map[string]uint64
	poolError map[string]string
	waits     int
}

func (f *fakeClient) SuggestedParams(context.Context) (types.SuggestedParams, error) {
	return types.SuggestedParams{}, nil
}

func (f *fakeClient) SendRawTransaction(context.Context, []byte) (string, error) {
	return "", nil
}

func (f *fakeClient) PendingTransaction(_ context.Context, txID string) (PendingTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message, ok := f.poolError[txID]; ok {
		return PendingTransaction{PoolError: message}, nil
	}
	if at, ok := f.confirmAt[txID]; ok && at <= f.round {
		return PendingTransaction{ConfirmedRound: at}, nil
	}
	return PendingTransaction{}, nil
}

func (f *fakeClient) Status(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.round, nil
}

func (f *fakeClient) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waits++
	f.round = round + 1
	return f.round, nil
}

func (f *fakeClient) Simulate(context.Context, SimulateRequest) (SimulateResult, error) {
	return SimulateResult{}, nil
}
