package indexer

import "github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"

// Transaction is a confirmed transaction as reported by the indexer.
type Transaction = models.Transaction

// Box is an application box value.
type Box = models.Box
