package batch

import (
	"context"
	"errors"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/NautilusOSS/envoi-contracts/pkg/vns"
)

// DefaultConcurrency bounds the groups in flight when Options leave it unset.
const DefaultConcurrency = 4

// Status is the outcome of one entry.
type Status int

const (
	StatusFailed Status = iota
	StatusConfirmed
	StatusSimulated
	StatusSkipped
	// StatusUnrecorded is a confirmed reservation the journal failed to
	// store. A rerun would submit it again.
	StatusUnrecorded
)

func (s Status) String() string {
	switch s {
	case StatusConfirmed:
		return "confirmed"
	case StatusSimulated:
		return "simulated"
	case StatusSkipped:
		return "skipped"
	case StatusUnrecorded:
		return "unrecorded"
	default:
		return "failed"
	}
}

// Result reports what happened to one entry.
type Result struct {
	Item   Item
	Status Status
	TxID   string
	Round  uint64
	// Reason explains a skipped entry.
	Reason string
	Err    error
}

// Report holds one Result per input entry, in input order.
type Report struct {
	Results []Result
}

// Count returns the number of results with status.
func (r Report) Count(status Status) int {
	count := 0
	for _, result := range r.Results {
		if result.Status == status {
			count++
		}
	}
	return count
}

// Failures returns the results that need attention: failed entries and
// confirmed entries missing from the journal.
func (r Report) Failures() []Result {
	var failed []Result
	for _, result := range r.Results {
		if result.Status == StatusFailed || result.Status == StatusUnrecorded {
			failed = append(failed, result)
		}
	}
	return failed
}

// Reserver submits one administrative reservation. *vns.Client implements
// it.
type Reserver interface {
	AdminReserve(ctx context.Context, request vns.AdminReserveRequest) (vns.Result, error)
}

// Options configure ReserveAll.
type Options struct {
	Concurrency int
	// Price is recorded with every reservation.
	Price   uint64
	Journal *Journal
	Logger  *zerolog.Logger
}

// ReserveAll reserves every item and returns a report covering all of them.
// A failing entry does not stop the others. The error is non-nil only when
// ctx ends before every entry ran.
func ReserveAll(ctx context.Context, reserver Reserver, items []Item, options Options) (Report, error) {
	if reserver == nil {
		return Report{}, errors.New("reserver is required")
	}
	limit := options.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}

	results := make([]Result, len(items))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for index, item := range items {
		index, item := index, item // per-iteration copies (go 1.21 loop semantics)
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			result := reserveOne(groupCtx, reserver, item, options)
			results[index] = result

			event := logger.Info()
			if result.Err != nil {
				event = logger.Warn().Err(result.Err)
			}
			event.Str("name", item.Name).
				Int("line", item.Line).
				Str("status", result.Status.String()).
				Str("txid", result.TxID).
				Str("reason", result.Reason).
				Msg("reservation processed")
			return nil
		})
	}
	_ = group.Wait()

	for index := range results {
		if results[index].Item == (Item{}) {
			results[index] = Result{Item: items[index], Status: StatusFailed, Err: ctx.Err()}
		}
	}
	return Report{Results: results}, ctx.Err()
}

func reserveOne(ctx context.Context, reserver Reserver, item Item, options Options) Result {
	result := Result{Item: item}

	if options.Journal != nil {
		entry, found, err := options.Journal.Lookup(item.Name)
		if err != nil {
			result.Err = err
			return result
		}
		if found {
			result.Status = StatusSkipped
			result.TxID = entry.TxID
			result.Reason = "already reserved"
			return result
		}
	}

	if common.IsHexAddress(item.Owner) {
		result.Status = StatusSkipped
		result.Reason = "owner is an EVM address"
		return result
	}
	owner, err := types.DecodeAddress(item.Owner)
	if err != nil {
		result.Err = err
		return result
	}

	reserved, err := reserver.AdminReserve(ctx, vns.AdminReserveRequest{
		Name:  item.Name,
		Owner: owner,
		Price: options.Price,
	})
	if err != nil {
		result.Err = err
		return result
	}

	result.TxID = reserved.TxID()
	if reserved.Simulated() {
		result.Status = StatusSimulated
		return result
	}
	result.Status = StatusConfirmed
	if len(reserved.Receipts) > 0 {
		result.Round = reserved.Receipts[reserved.Group.AnchorIndex].ConfirmedRound
	}

	if options.Journal != nil {
		entry := Entry{Owner: item.Owner, TxID: result.TxID, Round: result.Round, At: time.Now().UTC()}
		if err := options.Journal.Record(item.Name, entry); err != nil {
			result.Status = StatusUnrecorded
			result.Err = err
		}
	}
	return result
}
