package tokens

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrTxFailed        = errors.New("transaction rejected or failed")
	ErrTokenIDNotFound = errors.New("Mint event not found")
)

// Signer is the signing capability handed out by a connected wallet.
type Signer interface {
	Address() common.Address
	SendTransaction(ctx context.Context, call *Call) (common.Hash, error)
}

type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Call is an outbound contract call before it is signed.
type Call struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

type MintRequest struct {
	Contract common.Address
	Price    *big.Int
}

type MintReceipt struct {
	TxHash common.Hash
	Logs   []*types.Log
}

type WrapRequest struct {
	Contract common.Address
	TokenID  *big.Int
	TokenURI string
}

// TxError keeps the node's or the wallet's message as its own and matches ErrTxFailed.
type TxError struct {
	Method string
	Hash   common.Hash
	Err    error
}

func (e *TxError) Error() string {
	return e.Err.Error()
}

func (e *TxError) Unwrap() error {
	return e.Err
}

func (e *TxError) Is(target error) bool {
	return target == ErrTxFailed
}
