package wallet

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"mintwrap/gl"
	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/onrik/ethrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name      string
	available bool
	signer    tokens.Signer
	err       error
	enabled   int
}

func (p *stubProvider) Name() string    { return p.name }
func (p *stubProvider) Available() bool { return p.available }
func (p *stubProvider) Enable(ctx context.Context) (tokens.Signer, error) {
	p.enabled++
	return p.signer, p.err
}

type stubSigner common.Address

func (s stubSigner) Address() common.Address { return common.Address(s) }
func (s stubSigner) SendTransaction(ctx context.Context, call *tokens.Call) (common.Hash, error) {
	return common.Hash{}, nil
}

func TestConnectOrder(t *testing.T) {
	injected := &stubProvider{name: "keystore", available: true, signer: stubSigner(common.HexToAddress("0x01"))}
	relay := &stubProvider{name: "relay", available: true, signer: stubSigner(common.HexToAddress("0x02"))}

	s := &Session{}
	addr, err := s.Connect(context.Background(), injected, relay)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x01"), addr)
	assert.Equal(t, "keystore", s.Provider())
	assert.Equal(t, 0, relay.enabled)

	injected.available = false
	addr, err = s.Connect(context.Background(), injected, relay)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x02"), addr)
	assert.Equal(t, "relay", s.Provider())
}

func TestConnectNoWallet(t *testing.T) {
	s := &Session{}
	_, err := s.Connect(context.Background(), &stubProvider{}, nil)
	assert.ErrorIs(t, err, ErrNoWalletAvailable)
	_, err = s.Signer()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnectEnableFails(t *testing.T) {
	injected := &stubProvider{name: "keystore", available: true, err: errors.New("user rejected")}
	relay := &stubProvider{name: "relay", available: true, signer: stubSigner{}}
	s := &Session{}
	_, err := s.Connect(context.Background(), injected, relay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user rejected")
	assert.Equal(t, 0, relay.enabled)
}

func TestDisconnect(t *testing.T) {
	s := &Session{}
	_, err := s.Connect(context.Background(), &stubProvider{name: "relay", available: true, signer: stubSigner(common.HexToAddress("0x02"))})
	require.NoError(t, err)
	_, ok := s.Address()
	assert.True(t, ok)

	s.Disconnect()
	_, err = s.Signer()
	assert.ErrorIs(t, err, ErrNotConnected)
	_, ok = s.Address()
	assert.False(t, ok)
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0xABCD...1234", ShortAddress("0xABCDEF0000000000000000000000000000001234"))
	assert.Equal(t, "0x12", ShortAddress("0x12"))
}

type fakeBackend struct {
	sent     []*types.Transaction
	estimate error
}

func (b *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}
func (b *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(5000000000), nil
}
func (b *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 90000, b.estimate
}
func (b *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.sent = append(b.sent, tx)
	return nil
}

func TestKeySignerSignsForChain(t *testing.T) {
	prv, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := &fakeBackend{}
	chainID := big.NewInt(56)
	ks := NewKeySigner(prv, backend, chainID)

	to := common.HexToAddress("0x1BEe8d11f11260A4E39627EDfCEB345aAfeb57d9")
	hash, err := ks.SendTransaction(context.Background(), &tokens.Call{To: to, Value: big.NewInt(100), Data: []byte{1, 2, 3, 4}})
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	tx := backend.sent[0]
	assert.Equal(t, tx.Hash(), hash)
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(90000), tx.Gas())
	assert.Equal(t, int64(100), tx.Value().Int64())
	assert.Equal(t, to, *tx.To())
	assert.Equal(t, int64(56), tx.ChainId().Int64())

	from, err := types.Sender(types.NewEIP155Signer(chainID), tx)
	require.NoError(t, err)
	assert.Equal(t, ks.Address(), from)
}

func TestKeySignerEstimateFails(t *testing.T) {
	prv, _ := crypto.GenerateKey()
	backend := &fakeBackend{estimate: errors.New("insufficient funds")}
	ks := NewKeySigner(prv, backend, big.NewInt(56))
	_, err := ks.SendTransaction(context.Background(), &tokens.Call{Value: big.NewInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")
	assert.Empty(t, backend.sent)
}

func TestKeyStoreProvider(t *testing.T) {
	dir := t.TempDir()
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	account, err := ks.NewAccount("secret")
	require.NoError(t, err)

	p := &KeyStoreProvider{
		File:       account.URL.Path,
		Passphrase: func() (string, error) { return "secret", nil },
		Backend:    &fakeBackend{},
		ChainID:    big.NewInt(56),
	}
	require.True(t, p.Available())
	signer, err := p.Enable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, account.Address, signer.Address())

	p.Passphrase = func() (string, error) { return "wrong", nil }
	_, err = p.Enable(context.Background())
	assert.Error(t, err)

	missing := &KeyStoreProvider{File: filepath.Join(dir, "none.json"), Backend: &fakeBackend{}}
	assert.False(t, missing.Available())
	_, err = os.Stat(missing.File)
	assert.True(t, os.IsNotExist(err))
}

type fakeRelay struct {
	accounts []string
	sent     []ethrpc.T
}

func (r *fakeRelay) EthAccounts() ([]string, error) { return r.accounts, nil }
func (r *fakeRelay) EthSendTransaction(t ethrpc.T) (string, error) {
	r.sent = append(r.sent, t)
	return "0xdead000000000000000000000000000000000000000000000000000000000000", nil
}

func TestRelayProvider(t *testing.T) {
	assert.False(t, NewRelayProvider("").Available())

	relay := &fakeRelay{accounts: []string{"0xABCDEF0000000000000000000000000000001234"}}
	p := NewRelayProviderWithClient("http://relay", relay)
	require.True(t, p.Available())
	signer, err := p.Enable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xABCDEF0000000000000000000000000000001234"), signer.Address())

	to := common.HexToAddress("0x1BEe8d11f11260A4E39627EDfCEB345aAfeb57d9")
	hash, err := signer.SendTransaction(context.Background(), &tokens.Call{To: to, Value: big.NewInt(10), Data: []byte{0xab}})
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0xdead000000000000000000000000000000000000000000000000000000000000"), hash)
	require.Len(t, relay.sent, 1)
	assert.Equal(t, "0xab", relay.sent[0].Data)
	assert.Equal(t, to.Hex(), relay.sent[0].To)
	assert.Equal(t, int(gl.GasLimit), relay.sent[0].Gas)

	_, err = NewRelayProviderWithClient("http://relay", &fakeRelay{}).Enable(context.Background())
	assert.Error(t, err)
}
