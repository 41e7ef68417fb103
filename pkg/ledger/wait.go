package ledger

import (
	"context"
	"fmt"
)

// DefaultWaitRounds is the confirmation window used when none is given.
const DefaultWaitRounds uint64 = 4

// WaitForConfirmation polls client until every transaction in txIDs is
// confirmed. It returns the confirmed results keyed by ID, a *PoolError when
// the node rejects one of them, or a *TimeoutError once waitRounds rounds pass
// without confirmation.
func WaitForConfirmation(
	ctx context.Context,
	client Client,
	txIDs []string,
	waitRounds uint64,
) (map[string]PendingTransaction, error) {
	if client == nil {
		return nil, fmt.Errorf("ledger client is required")
	}
	if waitRounds == 0 {
		waitRounds = DefaultWaitRounds
	}

	round, err := client.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get node status: %w", err)
	}
	deadline := round + waitRounds

	confirmed := make(map[string]PendingTransaction, len(txIDs))
	for {
		if err := ctx.Err(); err != nil {
			return confirmed, &TimeoutError{Pending: pendingIDs(txIDs, confirmed), LastRound: round, Err: err}
		}

		for _, txID := range txIDs {
			if _, done := confirmed[txID]; done {
				continue
			}
			info, err := client.PendingTransaction(ctx, txID)
			if err != nil {
				if ctx.Err() != nil {
					return confirmed, &TimeoutError{Pending: pendingIDs(txIDs, confirmed), LastRound: round, Err: ctx.Err()}
				}
				return confirmed, fmt.Errorf("failed to get pending transaction %s: %w", txID, err)
			}
			if info.PoolError != "" {
				return confirmed, &PoolError{TxID: txID, Message: info.PoolError}
			}
			if info.ConfirmedRound > 0 {
				confirmed[txID] = info
			}
		}

		if len(confirmed) == len(txIDs) {
			return confirmed, nil
		}
		if round >= deadline {
			return confirmed, &TimeoutError{Pending: pendingIDs(txIDs, confirmed), LastRound: round}
		}

		next, err := client.StatusAfterBlock(ctx, round)
		if err != nil {
			if ctx.Err() != nil {
				return confirmed, &TimeoutError{Pending: pendingIDs(txIDs, confirmed), LastRound: round, Err: ctx.Err()}
			}
			return confirmed, fmt.Errorf("failed to wait for round %d: %w", round+1, err)
		}
		if next <= round {
			next = round + 1
		}
		round = next
	}
}

func pendingIDs(txIDs []string, confirmed map[string]PendingTransaction) []string {
	pending := make([]string, 0, len(txIDs))
	for _, txID := range txIDs {
		if _, done := confirmed[txID]; !done {
			pending = append(pending, txID)
		}
	}
	return pending
}
