package vns

import (
	"context"
	"encoding/binary"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
	"github.com/NautilusOSS/envoi-contracts/pkg/indexer"
	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
	"github.com/NautilusOSS/envoi-contracts/pkg/submit"
)

var testApps = Apps{
	Registry:            797607,
	Resolver:            797608,
	Registrar:           797609,
	ReverseRegistrar:    797610,
	Token:               780596,
	RSVP:                797611,
	StakingRegistrar:    797612,
	CollectionRegistrar: 797613,
}

func newTestClient(t *testing.T, fake *fakeLedger, simulate bool) (*Client, *submit.Account) {
	t.Helper()
	account, err := submit.NewAccount(crypto.GenerateAccount().PrivateKey)
	require.NoError(t, err)
	client, err := NewClient(Config{
		Ledger:   fake,
		Apps:     testApps,
		Signer:   account,
		Simulate: simulate,
	})
	require.NoError(t, err)
	return client, account
}

func selector(t *testing.T, signature string) []byte {
	t.Helper()
	method, err := contract.New("test", 1, signature)
	require.NoError(t, err)
	out, err := method.Selector(signatureName(signature))
	require.NoError(t, err)
	return out
}

func signatureName(signature string) string {
	name, _, _ := strings.Cut(signature, "(")
	return name
}

func addressBytes(address types.Address) []byte {
	return address[:]
}

func TestNewClientRequiresLedger(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestRegisterSimulatedComposesFullGroup(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, account := newTestClient(t, fake, true)

	result, err := client.Register(context.Background(), RegisterRequest{Name: "nshell", Owner: account.Address(), Years: 1})
	require.NoError(t, err)
	require.True(t, result.Simulated())
	require.Equal(t, 0, fake.sendCount())
	require.False(t, result.Group.Consumed())

	txns := fake.lastSimulation()
	require.Len(t, txns, 6)

	kinds := []types.TxType{types.PaymentTx, types.ApplicationCallTx, types.PaymentTx, types.ApplicationCallTx, types.ApplicationCallTx, types.ApplicationCallTx}
	apps := []uint64{0, testApps.Token, 0, testApps.Registrar, testApps.Resolver, testApps.Registrar}
	for index, txn := range txns {
		assert.Equal(t, kinds[index], txn.Type, "txn %d", index)
		assert.Equal(t, types.AppIndex(apps[index]), txn.ApplicationID, "txn %d", index)
		assert.Equal(t, account.Address(), txn.Sender)
		if index < len(txns)-1 {
			assert.Zero(t, txn.Fee, "txn %d", index)
		}
	}
	require.Equal(t, types.MicroAlgos(RegisterFee+5*1000), txns[5].Fee)
	require.Equal(t, 5, result.Group.AnchorIndex)

	require.Equal(t, types.MicroAlgos(ApprovePayment), txns[0].Amount)
	require.Equal(t, crypto.GetApplicationAddress(testApps.Token), txns[0].Receiver)
	require.Equal(t, types.MicroAlgos(RegisterPayment), txns[2].Amount)
	require.Equal(t, crypto.GetApplicationAddress(testApps.Registrar), txns[2].Receiver)

	require.Equal(t, []byte{0xb5, 0x42, 0x21, 0x25}, txns[1].ApplicationArgs[0])
	require.Equal(t, addressBytes(crypto.GetApplicationAddress(testApps.Registrar)), txns[1].ApplicationArgs[1])

	require.Equal(t, []byte{0xe5, 0xa2, 0x5c, 0x8d}, txns[3].ApplicationArgs[0])
	label, err := contract.FixedBytes("nshell", contract.ShortNameWidth)
	require.NoError(t, err)
	require.Equal(t, label, txns[3].ApplicationArgs[1])
	require.Equal(t, addressBytes(account.Address()), txns[3].ApplicationArgs[2])
	duration := new(big.Int).SetBytes(txns[3].ApplicationArgs[3])
	require.Equal(t, uint64(365*24*3600), duration.Uint64())

	require.Equal(t, []byte{0x4f, 0x80, 0xfa, 0x6f}, txns[4].ApplicationArgs[0])
	node := namehash.Namehash("nshell.voi")
	require.Equal(t, node.Bytes(), txns[4].ApplicationArgs[1])
	require.Len(t, txns[4].ApplicationArgs[2], contract.NameWidth)
	require.Equal(t, "nshell.voi", contract.FixedString(txns[4].ApplicationArgs[2]))

	require.Equal(t, []byte{0x58, 0x75, 0x9f, 0xa2}, txns[5].ApplicationArgs[0])

	for _, txn := range txns {
		require.Equal(t, result.Group.GroupID, txn.Group)
	}
}

func TestRegisterLiveSendsPopulatedGroup(t *testing.T) {
	box := []byte("box_nshell")
	extra := crypto.GenerateAccount().Address
	fake := &fakeLedger{round: 10}
	fake.respond = func(request ledger.SimulateRequest) ledger.SimulateResult {
		require.True(t, request.AllowEmptySignatures)
		require.True(t, request.AllowUnnamedResources)
		return ledger.SimulateResult{
			LastRound: 10,
			Unnamed: ledger.Resources{
				Accounts: []types.Address{extra},
				Boxes:    []ledger.BoxResource{{App: testApps.Registry, Name: box}},
			},
		}
	}
	client, account := newTestClient(t, fake, false)

	result, err := client.Register(context.Background(), RegisterRequest{Name: "nshell", Owner: account.Address(), Years: 2})
	require.NoError(t, err)
	require.False(t, result.Simulated())
	require.Equal(t, 1, fake.sendCount())
	require.Len(t, result.Receipts, 6)
	require.True(t, result.Group.Consumed())
	require.Equal(t, result.Group.TxIDs()[5], result.TxID())

	anchor := result.Group.Transactions[result.Group.AnchorIndex]
	require.Contains(t, anchor.Accounts, extra)
	require.Contains(t, anchor.ForeignApps, types.AppIndex(testApps.Registry))
	require.Len(t, anchor.BoxReferences, 1)
	require.Equal(t, box, anchor.BoxReferences[0].Name)
	require.Equal(t, uint64(1), anchor.BoxReferences[0].ForeignAppIdx)

	for index, receipt := range result.Receipts {
		require.Equal(t, index, receipt.Index)
		require.Equal(t, uint64(11), receipt.ConfirmedRound)
	}
}

func TestRegisterStopsWhenDiscoveryFails(t *testing.T) {
	fake := &fakeLedger{round: 10}
	fake.respond = func(ledger.SimulateRequest) ledger.SimulateResult {
		return ledger.SimulateResult{FailureMessage: "logic eval error: assert failed", FailedAt: []uint64{3}}
	}
	client, account := newTestClient(t, fake, false)

	_, err := client.Register(context.Background(), RegisterRequest{Name: "nshell", Owner: account.Address(), Years: 1})
	var rejected *submit.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, []uint64{3}, rejected.FailedAt)
	require.Equal(t, 0, fake.sendCount())
}

func TestRegisterValidatesRequest(t *testing.T) {
	fake := &fakeLedger{}
	client, account := newTestClient(t, fake, true)

	cases := []RegisterRequest{
		{Name: "", Owner: account.Address(), Years: 1},
		{Name: "a.b", Owner: account.Address(), Years: 1},
		{Name: "nshell", Years: 1},
		{Name: "nshell", Owner: account.Address()},
		{Name: "this-label-is-much-longer-than-32-bytes", Owner: account.Address(), Years: 1},
	}
	for _, request := range cases {
		_, err := client.Register(context.Background(), request)
		require.Error(t, err)
		require.True(t, IsValidation(err), "request %+v", request)
	}
	require.Empty(t, fake.simulations)
}

func TestWriteRequiresConfiguredApp(t *testing.T) {
	account, err := submit.NewAccount(crypto.GenerateAccount().PrivateKey)
	require.NoError(t, err)
	client, err := NewClient(Config{Ledger: &fakeLedger{}, Signer: account, Apps: Apps{Registry: 1}})
	require.NoError(t, err)

	_, err = client.SetText(context.Background(), SetTextRequest{Name: "nshell.voi", Key: "url", Value: "https://example.com"})
	var notConfigured *NotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
	require.Equal(t, "resolver", notConfigured.Contract)
}

func TestWriteRequiresSigner(t *testing.T) {
	client, err := NewClient(Config{Ledger: &fakeLedger{}, Apps: testApps})
	require.NoError(t, err)
	_, err = client.SetTTL(context.Background(), SetTTLRequest{Name: "nshell.voi", TTL: 60})
	require.Error(t, err)
}

func TestSetTextEncodesFixedWidthArguments(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, _ := newTestClient(t, fake, true)

	_, err := client.SetText(context.Background(), SetTextRequest{Name: "nshell.voi", Key: "avatar", Value: "ipfs://cid"})
	require.NoError(t, err)

	txns := fake.lastSimulation()
	require.Len(t, txns, 1)
	require.Equal(t, types.MicroAlgos(ResolverWriteFee), txns[0].Fee)
	require.Equal(t, selector(t, "setText(byte[32],byte[22],byte[256])void"), txns[0].ApplicationArgs[0])
	require.Len(t, txns[0].ApplicationArgs[2], contract.TextKeyWidth)
	require.Len(t, txns[0].ApplicationArgs[3], contract.NameWidth)
	require.Equal(t, "avatar", contract.FixedString(txns[0].ApplicationArgs[2]))
	require.Equal(t, types.Digest{}, txns[0].Group)
}

func TestSetTextRejectsLongKey(t *testing.T) {
	client, _ := newTestClient(t, &fakeLedger{}, true)
	_, err := client.SetText(context.Background(), SetTextRequest{Name: "nshell.voi", Key: "a-very-long-text-record-key", Value: "x"})
	require.True(t, IsValidation(err))
}

func TestOwnerOfDecodesAddress(t *testing.T) {
	owner := crypto.GenerateAccount().Address
	fake := &fakeLedger{respond: returning(owner[:])}
	client, account := newTestClient(t, fake, false)

	got, err := client.OwnerOf(context.Background(), "nshell.voi")
	require.NoError(t, err)
	require.Equal(t, owner, got)
	require.Equal(t, 0, fake.sendCount())

	txns := fake.lastSimulation()
	require.Len(t, txns, 1)
	require.Equal(t, account.Address(), txns[0].Sender)
	require.Equal(t, []byte{0x15, 0x86, 0x27, 0x02}, txns[0].ApplicationArgs[0])
}

func TestViewUsesReadSender(t *testing.T) {
	reader := crypto.GenerateAccount().Address
	fake := &fakeLedger{respond: returning([]byte{0x80})}
	client, err := NewClient(Config{Ledger: fake, Apps: testApps, ReadSender: reader})
	require.NoError(t, err)

	available, err := client.CheckName(context.Background(), "nshell")
	require.NoError(t, err)
	require.True(t, available)
	require.Equal(t, reader, fake.lastSimulation()[0].Sender)
}

func TestViewWithoutSenderFails(t *testing.T) {
	client, err := NewClient(Config{Ledger: &fakeLedger{}, Apps: testApps})
	require.NoError(t, err)
	_, err = client.OwnerOf(context.Background(), "nshell.voi")
	require.Error(t, err)
}

func TestViewReportsRejection(t *testing.T) {
	fake := &fakeLedger{respond: func(ledger.SimulateRequest) ledger.SimulateResult {
		return ledger.SimulateResult{FailureMessage: "logic eval error: box not found"}
	}}
	client, _ := newTestClient(t, fake, false)

	_, err := client.Resolver(context.Background(), "missing.voi")
	var rejected *submit.RejectedError
	require.True(t, errors.As(err, &rejected))
}

func TestExpirationDecodesTimestamp(t *testing.T) {
	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], 1767225600)
	fake := &fakeLedger{respond: returning(word)}
	client, _ := newTestClient(t, fake, false)

	expires, err := client.Expiration(context.Background(), "nshell.voi")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), expires)

	node := namehash.Namehash("nshell.voi")
	require.Equal(t, node.Bytes(), fake.lastSimulation()[0].ApplicationArgs[1])
}

func TestPriceEncodesLabelAndDuration(t *testing.T) {
	price := make([]byte, 8)
	binary.BigEndian.PutUint64(price, 5000000)
	fake := &fakeLedger{respond: returning(price)}
	client, _ := newTestClient(t, fake, false)

	got, err := client.Price(context.Background(), "nshell", 2)
	require.NoError(t, err)
	require.Equal(t, uint64(5000000), got)

	args := fake.lastSimulation()[0].ApplicationArgs
	require.Len(t, args, 3)
	require.Equal(t, "nshell", contract.FixedString(args[1]))
	require.Equal(t, uint64(2*365*24*3600), new(big.Int).SetBytes(args[2]).Uint64())
}

func TestRenewSendsSingleCallWithPayment(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, _ := newTestClient(t, fake, true)

	_, err := client.Renew(context.Background(), RenewRequest{Name: "nshell", Years: 1})
	require.NoError(t, err)

	txns := fake.lastSimulation()
	require.Len(t, txns, 2)
	require.Equal(t, types.MicroAlgos(RenewPayment), txns[0].Amount)
	require.Equal(t, types.MicroAlgos(RegistrarWriteFee+1000), txns[1].Fee)
	// ABI strings carry a two-byte length prefix.
	require.Equal(t, append([]byte{0, 6}, "nshell"...), txns[1].ApplicationArgs[1])
}

func TestReverseRegisterUsesOwnerKeyAsLabel(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, account := newTestClient(t, fake, true)

	_, err := client.ReverseRegister(context.Background(), ReverseRegisterRequest{Owner: account.Address(), Duration: 3600})
	require.NoError(t, err)

	txns := fake.lastSimulation()
	require.Len(t, txns, 5)
	require.Equal(t, types.AppIndex(testApps.ReverseRegistrar), txns[3].ApplicationID)
	require.Equal(t, addressBytes(account.Address()), txns[3].ApplicationArgs[1])
	require.Equal(t, types.MicroAlgos(ReverseRegisterFee+4*1000), txns[4].Fee)
	require.Equal(t, types.AppIndex(testApps.ReverseRegistrar), txns[4].ApplicationID)
}

func TestStakingRegisterReferencesStakingApp(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, account := newTestClient(t, fake, true)

	_, err := client.StakingRegister(context.Background(), AppRegisterRequest{AppID: 12345})
	require.NoError(t, err)

	txns := fake.lastSimulation()
	require.Len(t, txns, 2)
	require.Equal(t, types.MicroAlgos(StakingRegisterPayment), txns[0].Amount)
	call := txns[1]
	require.Equal(t, types.MicroAlgos(SubRegistrarFee+1000), call.Fee)
	require.Equal(t, []types.AppIndex{12345}, call.ForeignApps)
	require.Equal(t, namehash.EncodeUint256(big.NewInt(12345)), call.ApplicationArgs[1])
	require.Equal(t, addressBytes(account.Address()), call.ApplicationArgs[2])
}

func TestCollectionRegisterHasNoPayment(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, _ := newTestClient(t, fake, true)

	_, err := client.CollectionRegister(context.Background(), AppRegisterRequest{AppID: 777})
	require.NoError(t, err)
	txns := fake.lastSimulation()
	require.Len(t, txns, 1)
	require.Equal(t, types.AppIndex(testApps.CollectionRegistrar), txns[0].ApplicationID)
}

func TestReserveRecordsFirstLabelLength(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, account := newTestClient(t, fake, true)

	_, err := client.Reserve(context.Background(), ReserveRequest{Name: "nshell.voi"})
	require.NoError(t, err)

	txns := fake.lastSimulation()
	require.Len(t, txns, 1)
	args := txns[0].ApplicationArgs
	require.Equal(t, uint64(6), binary.BigEndian.Uint64(args[3]))
	require.Len(t, txns[0].BoxReferences, 2)
	require.Equal(t, append([]byte("addr_"), addressBytes(account.Address())...), txns[0].BoxReferences[1].Name)
}

func TestReservedLength(t *testing.T) {
	require.Equal(t, uint64(6), ReservedLength("nshell.voi"))
	require.Equal(t, uint64(3), ReservedLength("abc"))
	require.Equal(t, uint64(0), ReservedLength(".voi"))
}

func TestSetSubnodeOwnerHashesLabel(t *testing.T) {
	fake := &fakeLedger{round: 10}
	client, account := newTestClient(t, fake, true)

	_, err := client.SetSubnodeOwner(context.Background(), SetSubnodeOwnerRequest{Parent: "voi", Label: "nshell", Owner: account.Address()})
	require.NoError(t, err)

	label, err := namehash.LabelHash("nshell", namehash.SHA256)
	require.NoError(t, err)
	args := fake.lastSimulation()[0].ApplicationArgs
	require.Equal(t, namehash.Namehash("voi").Bytes(), args[1])
	require.Equal(t, label.Bytes(), args[2])

	subnode, err := namehash.Subnode(namehash.Namehash("voi"), "nshell", namehash.SHA256)
	require.NoError(t, err)
	require.Equal(t, namehash.Namehash("nshell.voi"), subnode)
}

func TestBalanceOfDecodesUint256(t *testing.T) {
	word := namehash.EncodeUint256(big.NewInt(42_000_000))
	fake := &fakeLedger{respond: returning(word)}
	client, account := newTestClient(t, fake, false)

	balance, err := client.BalanceOf(context.Background(), account.Address())
	require.NoError(t, err)
	require.Equal(t, int64(42_000_000), balance.Int64())
}

func TestReverseNameReadsReverseNode(t *testing.T) {
	record, err := contract.FixedBytes("nshell.voi", contract.NameWidth)
	require.NoError(t, err)
	fake := &fakeLedger{respond: returning(record)}
	client, account := newTestClient(t, fake, false)

	name, err := client.ReverseName(context.Background(), account.Address())
	require.NoError(t, err)
	require.Equal(t, "nshell.voi", name)

	node := namehash.Namehash(account.Address().String() + ".addr.reverse")
	require.Equal(t, node.Bytes(), fake.lastSimulation()[0].ApplicationArgs[1])
}

func TestCustomTopLevelLabel(t *testing.T) {
	client, err := NewClient(Config{Ledger: &fakeLedger{}, TLD: ".algo."})
	require.NoError(t, err)
	require.Equal(t, "nshell.algo", client.FullName("nshell"))
}

func TestRecheckLooksUpPendingTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/transactions/CONFIRMED" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"transaction":{"id":"CONFIRMED","confirmed-round":55}}`))
	}))
	defer server.Close()

	idx, err := indexer.NewClient(indexer.Config{BaseURL: server.URL})
	require.NoError(t, err)
	client, err := NewClient(Config{Ledger: &fakeLedger{}, Indexer: idx})
	require.NoError(t, err)

	confirmed, err := client.Recheck(context.Background(), &submit.ConfirmationTimeoutError{Pending: []string{"CONFIRMED", "LOST"}})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	require.Equal(t, uint64(55), confirmed["CONFIRMED"].ConfirmedRound)
}

func TestRecheckRequiresIndexer(t *testing.T) {
	client, err := NewClient(Config{Ledger: &fakeLedger{}})
	require.NoError(t, err)
	_, err = client.Recheck(context.Background(), &submit.ConfirmationTimeoutError{})
	require.Error(t, err)
}
