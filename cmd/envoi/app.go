package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/rs/zerolog"

	"github.com/NautilusOSS/envoi-contracts/pkg/indexer"
	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
	"github.com/NautilusOSS/envoi-contracts/pkg/shared"
	"github.com/NautilusOSS/envoi-contracts/pkg/submit"
	"github.com/NautilusOSS/envoi-contracts/pkg/vns"
)

type app struct {
	client *vns.Client
	signer *submit.Account
	logger zerolog.Logger
}

// connect builds a vns client from the deployment file, the environment and
// the flags. Reads work without a signing key when --from is given.
func connect(flags *rootFlags, needSigner bool) (*app, error) {
	deployment, err := shared.LoadDeployment(flags.config)
	if err != nil {
		return nil, err
	}
	if flags.network != "" {
		network, err := shared.NormalizeNetwork(flags.network)
		if err != nil {
			return nil, err
		}
		deployment.Network = network
	}
	logger := shared.NewLogger("envoi", flags.debug || deployment.Debug)

	var signer *submit.Account
	var indexerToken string
	operator, operatorErr := shared.OperatorConfigFromEnv()
	if operatorErr == nil {
		deployment.ApplyOperator(operator)
		indexerToken = operator.IndexerToken
		signer, err = submit.AccountFromOperator(operator)
		if err != nil {
			return nil, err
		}
	} else if needSigner || flags.from == "" {
		return nil, operatorErr
	}

	var readSender types.Address
	if flags.from != "" {
		readSender, err = types.DecodeAddress(flags.from)
		if err != nil {
			return nil, fmt.Errorf("invalid --from address: %w", err)
		}
	}

	digest, err := namehash.ParseDigest(deployment.Digest)
	if err != nil {
		return nil, err
	}

	node, err := ledger.NewAlgod(ledger.Config{
		Network: deployment.Network,
		BaseURL: deployment.AlgodURL,
		Token:   deployment.AlgodToken,
		Logger:  &logger,
	})
	if err != nil {
		return nil, err
	}
	idx, err := indexer.NewClient(indexer.Config{
		Network: deployment.Network,
		BaseURL: deployment.IndexerURL,
		Token:   indexerToken,
	})
	if err != nil {
		return nil, err
	}

	config := vns.Config{
		Ledger:  node,
		Indexer: idx,
		Apps: vns.Apps{
			Registry:            deployment.Registry,
			Resolver:            deployment.Resolver,
			Registrar:           deployment.Registrar,
			ReverseRegistrar:    deployment.ReverseRegistrar,
			Token:               deployment.Token,
			RSVP:                deployment.RSVP,
			StakingRegistrar:    deployment.StakingRegistrar,
			CollectionRegistrar: deployment.CollectionRegistrar,
		},
		ReadSender: readSender,
		Digest:     digest,
		Simulate:   flags.simulate || deployment.Simulate,
		WaitRounds: deployment.WaitRounds,
		Logger:     &logger,
	}
	if signer != nil {
		config.Signer = signer
	}
	client, err := vns.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &app{client: client, signer: signer, logger: logger}, nil
}

// report prints the outcome of a write. A confirmation timeout is settled
// against the indexer before giving up.
func (a *app) report(ctx context.Context, out io.Writer, result vns.Result, err error) error {
	var timeout *submit.ConfirmationTimeoutError
	if errors.As(err, &timeout) {
		confirmed, recheckErr := a.client.Recheck(ctx, timeout)
		if recheckErr != nil {
			a.logger.Warn().Err(recheckErr).Msg("indexer recheck failed")
			return err
		}
		if len(confirmed) == len(timeout.Pending) && len(confirmed) > 0 {
			for txID, txn := range confirmed {
				fmt.Fprintf(out, "confirmed %s in round %d\n", txID, txn.ConfirmedRound)
			}
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}

	if result.Simulated() {
		fmt.Fprintf(out, "simulated %d transactions, fee %d, round %d\n", len(result.Group.Transactions), result.Group.Fee, result.DryRun.Round)
		return nil
	}
	anchor := result.Receipts[result.Group.AnchorIndex]
	fmt.Fprintf(out, "confirmed %s in round %d\n", anchor.TxID, anchor.ConfirmedRound)
	return nil
}
