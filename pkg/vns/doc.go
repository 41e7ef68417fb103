// Package vns is the operator client for the envoi name service contracts:
// the registry, the public resolver, the registrar and reverse registrar,
// the staking and collection registrars, the reservation (RSVP) contract,
// and the ARC-200 payment token.
//
// Every write takes a typed request, validates it, builds one or more
// application calls, composes them into a single atomic group and submits
// the group through package submit. Reads run as simulated single calls and
// decode the method's return value.
//
// # Getting Started
//
//	client, err := vns.NewClient(vns.Config{
//		Ledger: algodClient,
//		Signer: account,
//		Apps: vns.Apps{
//			Registry:  797607,
//			Resolver:  797608,
//			Registrar: 797609,
//			Token:     780596,
//		},
//	})
//	if err != nil {
//		return err
//	}
//	result, err := client.Register(ctx, vns.RegisterRequest{Name: "nshell", Owner: account.Address(), Years: 1})
package vns
