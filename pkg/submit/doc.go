// Package submit signs, broadcasts and confirms composed atomic groups, or
// dry-runs them through the node's simulate endpoint.
//
// A live submission yields one Receipt per transaction in group order, or an
// error and no receipts. A simulation never broadcasts and can be repeated;
// it yields a DryRunReport with the logs and ABI return values each call
// would produce.
//
// # Getting Started
//
//	pipeline, err := submit.NewPipeline(submit.Config{Client: algodClient})
//	if err != nil {
//		return err
//	}
//	account, err := submit.AccountFromMnemonic(os.Getenv("ENVOI_MNEMONIC"))
//	if err != nil {
//		return err
//	}
//	outcome, err := pipeline.Submit(ctx, group, submit.Options{}, account)
package submit
