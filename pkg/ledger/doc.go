// Package ledger abstracts the algod node calls the envoi tooling needs:
// suggested parameters, raw group submission, pending-transaction lookups,
// round status and group simulation.
//
// Algod adapts the official Algorand Go SDK client to the Client interface.
// WaitForConfirmation polls a Client until every transaction of a group is
// confirmed, rejected, or the round window runs out.
package ledger
