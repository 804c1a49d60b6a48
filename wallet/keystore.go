package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"

	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend is the part of ethclient.Client a local key needs to send transactions.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// KeyStoreProvider unlocks a local keystore file, it is tried before the relay.
type KeyStoreProvider struct {
	File       string
	Passphrase func() (string, error)
	Backend    Backend
	ChainID    *big.Int
}

func (p *KeyStoreProvider) Name() string {
	return "keystore"
}

func (p *KeyStoreProvider) Available() bool {
	if p.File == "" || p.Backend == nil {
		return false
	}
	_, err := os.Stat(p.File)
	return err == nil
}

func (p *KeyStoreProvider) Enable(ctx context.Context) (tokens.Signer, error) {
	keyjson, err := os.ReadFile(p.File)
	if err != nil {
		return nil, fmt.Errorf("Read keystore file fail. %s : %v", p.File, err)
	}
	pwd := ""
	if p.Passphrase != nil {
		if pwd, err = p.Passphrase(); err != nil {
			return nil, err
		}
	}
	key, err := keystore.DecryptKey(keyjson, pwd)
	if err != nil {
		return nil, fmt.Errorf("keystore decrypt error : %v", err)
	}
	return NewKeySigner(key.PrivateKey, p.Backend, p.ChainID), nil
}

// KeySigner signs with a private key held in memory.
type KeySigner struct {
	prv     *ecdsa.PrivateKey
	address common.Address
	backend Backend
	signer  types.Signer
}

func NewKeySigner(prv *ecdsa.PrivateKey, backend Backend, chainID *big.Int) *KeySigner {
	return &KeySigner{
		prv:     prv,
		address: crypto.PubkeyToAddress(prv.PublicKey),
		backend: backend,
		signer:  types.NewEIP155Signer(chainID),
	}
}

func (ks *KeySigner) Address() common.Address {
	return ks.address
}

func (ks *KeySigner) SendTransaction(ctx context.Context, call *tokens.Call) (common.Hash, error) {
	gasPrice, err := ks.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("Get SuggestGasPrice error. %v", err)
	}
	nonce, err := ks.backend.PendingNonceAt(ctx, ks.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("Get PendingNonceAt error. %v", err)
	}
	to := call.To
	gas, err := ks.backend.EstimateGas(ctx, ethereum.CallMsg{From: ks.address, To: &to, Value: call.Value, Data: call.Data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("EstimateGas error. %v", err)
	}

	tx := types.NewTransaction(nonce, to, call.Value, gas, gasPrice, call.Data)
	signedTx, err := types.SignTx(tx, ks.signer, ks.prv)
	if err != nil {
		return common.Hash{}, err
	}
	if err = ks.backend.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, err
	}
	return signedTx.Hash(), nil
}
