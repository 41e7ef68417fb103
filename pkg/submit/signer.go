package submit

import (
	"crypto/ed25519"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/shared"
)

// Signer signs transactions sent from one address.
type Signer interface {
	Address() types.Address
	SignTransaction(txn types.Transaction) (string, []byte, error)
}

// Account is a Signer holding an ed25519 key in memory.
type Account struct {
	address types.Address
	key     ed25519.PrivateKey
}

// NewAccount creates a new Account.
func NewAccount(key ed25519.PrivateKey) (*Account, error) {
	account, err := crypto.AccountFromPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}
	return &Account{address: account.Address, key: account.PrivateKey}, nil
}

// AccountFromMnemonic creates an Account from a 25-word mnemonic.
func AccountFromMnemonic(phrase string) (*Account, error) {
	key, err := shared.ParseMnemonic(phrase)
	if err != nil {
		return nil, err
	}
	return NewAccount(key)
}

// AccountFromOperator creates an Account from environment configuration.
func AccountFromOperator(config shared.OperatorConfig) (*Account, error) {
	key, err := config.SigningKey()
	if err != nil {
		return nil, err
	}
	return NewAccount(key)
}

// Address returns the account address.
func (a *Account) Address() types.Address {
	return a.address
}

// SignTransaction signs txn and returns its ID and encoded signed form.
func (a *Account) SignTransaction(txn types.Transaction) (string, []byte, error) {
	return crypto.SignTransaction(a.key, txn)
}
