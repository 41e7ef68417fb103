// Package envoi is the Go operator SDK for the envoi name service, an
// ENS-style naming system deployed as smart contracts on the Voi network.
//
// # Packages
//
//   - namehash: label classification and the recursive name hash.
//   - compose: builds atomic transaction groups from application calls,
//     pooling fees on an anchor transaction and sharing references.
//   - submit: signs, simulates, broadcasts and confirms groups.
//   - ledger: the node interface used by submit, with an algod adapter.
//   - contract: ABI method proxies for deployed applications.
//   - vns: typed operations over the registry, resolver, registrars,
//     reservation contract and payment token.
//   - batch: concurrent batch reservations with a resumable journal.
//   - indexer: indexer lookups for transactions, boxes and logs.
//   - shared: network defaults, operator credentials, deployment files and
//     logging.
//
// The envoi command in cmd/envoi exposes the vns operations on the command
// line.
//
// # Installation
//
//	go get github.com/NautilusOSS/envoi-contracts@latest
package envoi
