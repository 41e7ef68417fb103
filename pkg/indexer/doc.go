// Package indexer wraps the Algorand SDK indexer client for the ledger
// indexer. It looks up confirmed transactions, account history, application
// boxes and application logs.
//
// The indexer lags the node by a few rounds. It is used to settle the
// outcome of groups whose confirmation wait timed out, and to read contract
// state without simulating a call.
package indexer
