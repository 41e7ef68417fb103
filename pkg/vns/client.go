package vns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/rs/zerolog"

	"github.com/NautilusOSS/envoi-contracts/pkg/compose"
	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
	"github.com/NautilusOSS/envoi-contracts/pkg/indexer"
	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
	"github.com/NautilusOSS/envoi-contracts/pkg/submit"
)

// DefaultTLD is the top-level label names are registered under.
const DefaultTLD = "voi"

// Apps lists the deployed application IDs.
type Apps struct {
	Registry            uint64
	Resolver            uint64
	Registrar           uint64
	ReverseRegistrar    uint64
	Token               uint64
	RSVP                uint64
	StakingRegistrar    uint64
	CollectionRegistrar uint64
}

// Config configures a Client.
type Config struct {
	Ledger ledger.Client
	Apps   Apps
	// Indexer settles groups whose confirmation wait timed out. Optional.
	Indexer *indexer.Client
	// Signer signs writes and is the sender of reads.
	Signer submit.Signer
	// ReadSender overrides the sender of simulated reads.
	ReadSender types.Address
	Digest     namehash.Digest
	TLD        string
	// Simulate dry-runs every write instead of broadcasting it.
	Simulate   bool
	WaitRounds uint64
	// SkipResourcePopulation sends groups with only the references the
	// request named, without a discovery simulation first.
	SkipResourcePopulation bool
	Logger                 *zerolog.Logger
}

// Client runs envoi operations.
type Client struct {
	ledger     ledger.Client
	indexer    *indexer.Client
	pipeline   *submit.Pipeline
	apps       Apps
	signer     submit.Signer
	readSender types.Address
	digest     namehash.Digest
	tld        string
	simulate   bool
	populate   bool
	logger     zerolog.Logger

	registry   *contract.Contract
	resolver   *contract.Contract
	registrar  *contract.Contract
	reverse    *contract.Contract
	token      *contract.Contract
	rsvp       *contract.Contract
	staking    *contract.Contract
	collection *contract.Contract
}

// Result is the outcome of a write: the submitted group plus its receipts,
// or its dry-run report when simulating.
type Result struct {
	Group    *compose.AtomicGroup
	Receipts []submit.Receipt
	DryRun   *submit.DryRunReport
}

// Simulated reports whether the write was only simulated.
func (r Result) Simulated() bool {
	return r.DryRun != nil
}

// TxID returns the ID of the group's anchor transaction.
func (r Result) TxID() string {
	if r.Group == nil || len(r.Group.Transactions) == 0 {
		return ""
	}
	return r.Group.TxIDs()[r.Group.AnchorIndex]
}

// Return returns the ABI return value of the call built from operation op.
func (r Result) Return(op int) []byte {
	if r.Group == nil {
		return nil
	}
	return submit.Outcome{Receipts: r.Receipts, DryRun: r.DryRun}.ReturnOf(r.Group, op)
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger client is required")
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}
	logger = logger.With().Str("component", "vns").Logger()

	pipeline, err := submit.NewPipeline(submit.Config{
		Client:                config.Ledger,
		WaitRounds:            config.WaitRounds,
		AllowUnnamedResources: true,
		Logger:                &logger,
	})
	if err != nil {
		return nil, err
	}

	tld := strings.Trim(strings.TrimSpace(config.TLD), ".")
	if tld == "" {
		tld = DefaultTLD
	}

	client := &Client{
		ledger:     config.Ledger,
		indexer:    config.Indexer,
		pipeline:   pipeline,
		apps:       config.Apps,
		signer:     config.Signer,
		readSender: config.ReadSender,
		digest:     config.Digest,
		tld:        tld,
		simulate:   config.Simulate,
		populate:   !config.SkipResourcePopulation,
		logger:     logger,
	}

	contracts := []struct {
		target     **contract.Contract
		name       string
		appID      uint64
		signatures []string
	}{
		{&client.registry, "registry", config.Apps.Registry, registrySignatures},
		{&client.resolver, "resolver", config.Apps.Resolver, resolverSignatures},
		{&client.registrar, "registrar", config.Apps.Registrar, registrarSignatures},
		{&client.reverse, "reverse_registrar", config.Apps.ReverseRegistrar, subRegistrarSignatures},
		{&client.token, "token", config.Apps.Token, tokenSignatures},
		{&client.rsvp, "rsvp", config.Apps.RSVP, rsvpSignatures},
		{&client.staking, "staking_registrar", config.Apps.StakingRegistrar, subRegistrarSignatures},
		{&client.collection, "collection_registrar", config.Apps.CollectionRegistrar, subRegistrarSignatures},
	}
	for _, entry := range contracts {
		built, err := contract.New(entry.name, entry.appID, entry.signatures...)
		if err != nil {
			return nil, err
		}
		*entry.target = built
	}

	return client, nil
}

// Pipeline returns the submission pipeline.
func (c *Client) Pipeline() *submit.Pipeline {
	return c.pipeline
}

// Node returns the node of a full name under the client's digest.
func (c *Client) Node(name string) (namehash.Node, error) {
	return namehash.NamehashWith(name, c.digest)
}

// FullName appends the client's top-level label to label.
func (c *Client) FullName(label string) string {
	return label + "." + c.tld
}

// plan holds the group-level settings of a write.
type plan struct {
	fee     uint64
	beacon  uint64
	sharing bool
}

type buildFunc func(sender types.Address, params types.SuggestedParams) ([]compose.OperationDescriptor, error)

// write composes the descriptors returned by build into one group and
// submits it with the client's signer.
func (c *Client) write(ctx context.Context, p plan, build buildFunc) (Result, error) {
	if c.signer == nil {
		return Result{}, fmt.Errorf("a signer is required for writes")
	}

	params, err := c.ledger.SuggestedParams(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get suggested params: %w", err)
	}
	sender := c.signer.Address()
	ops, err := build(sender, params)
	if err != nil {
		return Result{}, err
	}

	options := compose.Options{
		Params:          params,
		Sender:          sender,
		Fee:             p.fee,
		Beacon:          p.beacon,
		ResourceSharing: p.sharing,
	}
	group, err := compose.Compose(ops, options)
	if err != nil {
		return Result{}, err
	}

	if c.simulate {
		outcome, err := c.pipeline.Submit(ctx, group, submit.Options{Simulate: true})
		return Result{Group: group, DryRun: outcome.DryRun}, err
	}

	if c.populate {
		group, err = c.populateResources(ctx, group, ops, options)
		if err != nil {
			return Result{}, err
		}
	}

	receipts, err := c.pipeline.Send(ctx, group, c.signer)
	if err != nil {
		return Result{Group: group}, err
	}
	return Result{Group: group, Receipts: receipts}, nil
}

// populateResources simulates group and recomposes it with the resources
// the simulation reported as used but unnamed.
func (c *Client) populateResources(
	ctx context.Context,
	group *compose.AtomicGroup,
	ops []compose.OperationDescriptor,
	options compose.Options,
) (*compose.AtomicGroup, error) {
	report, err := c.pipeline.Simulate(ctx, group)
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, err
	}
	if report.Unnamed.Empty() {
		return group, nil
	}

	extra := referencesFrom(report.Unnamed)
	enriched := append([]compose.OperationDescriptor(nil), ops...)
	target := len(enriched) - 1
	enriched[target].References = enriched[target].References.Merge(extra)

	c.logger.Debug().
		Int("accounts", len(extra.Accounts)).
		Int("apps", len(extra.Apps)).
		Int("boxes", len(extra.Boxes)).
		Msg("populated unnamed resources")

	return compose.Compose(enriched, options)
}

func referencesFrom(resources ledger.Resources) compose.References {
	refs := compose.References{
		Accounts: append([]types.Address(nil), resources.Accounts...),
		Apps:     append([]uint64(nil), resources.Apps...),
		Assets:   append([]uint64(nil), resources.Assets...),
	}
	for _, box := range resources.Boxes {
		refs.Boxes = append(refs.Boxes, compose.BoxRef{AppID: box.App, Name: box.Name})
	}
	return refs
}

// view simulates a single read call and returns its ABI return value.
func (c *Client) view(ctx context.Context, target *contract.Contract, call contract.Call) ([]byte, error) {
	sender := c.readSender
	if sender == (types.Address{}) && c.signer != nil {
		sender = c.signer.Address()
	}
	if sender == (types.Address{}) {
		return nil, fmt.Errorf("a signer or read sender is required for reads")
	}

	params, err := c.ledger.SuggestedParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggested params: %w", err)
	}
	descriptor, err := target.Build(sender, params, call)
	if err != nil {
		return nil, err
	}
	group, err := compose.Compose([]compose.OperationDescriptor{descriptor}, compose.Options{Params: params})
	if err != nil {
		return nil, err
	}

	report, err := c.pipeline.Simulate(ctx, group)
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, fmt.Errorf("%s failed: %w", descriptor.Label, err)
	}

	value := report.Transactions[group.CallIndex(0)].Return
	if value == nil {
		return nil, fmt.Errorf("%s returned no value", descriptor.Label)
	}
	return value, nil
}

func requireApp(target *contract.Contract) error {
	if target.AppID() == 0 {
		return &NotConfiguredError{Contract: target.Name()}
	}
	return nil
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// invoke submits a single call to target.
func (c *Client) invoke(ctx context.Context, target *contract.Contract, p plan, call contract.Call) (Result, error) {
	if err := requireApp(target); err != nil {
		return Result{}, err
	}
	return c.write(ctx, p, func(sender types.Address, params types.SuggestedParams) ([]compose.OperationDescriptor, error) {
		descriptor, err := target.Build(sender, params, call)
		if err != nil {
			return nil, err
		}
		return []compose.OperationDescriptor{descriptor}, nil
	})
}

// Recheck asks the indexer about the transactions a confirmation timeout
// left pending. It returns the ones that did confirm.
func (c *Client) Recheck(ctx context.Context, timeout *submit.ConfirmationTimeoutError) (map[string]indexer.Transaction, error) {
	if c.indexer == nil {
		return nil, fmt.Errorf("no indexer configured")
	}
	if timeout == nil {
		return map[string]indexer.Transaction{}, nil
	}
	confirmed, err := c.indexer.LookupTransactions(ctx, timeout.Pending)
	if err != nil {
		return nil, err
	}
	c.logger.Info().
		Int("pending", len(timeout.Pending)).
		Int("confirmed", len(confirmed)).
		Msg("rechecked timed out group")
	return confirmed, nil
}
