package evm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"mintwrap/gl"
	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type contract struct {
	abi     abi.ABI
	address common.Address
	reader  tokens.ReceiptReader
	poll    time.Duration
}

func (c *contract) Address() common.Address {
	return c.address
}

// send packs method, submits it through signer and waits for it to be mined.
func (c *contract) send(ctx context.Context, signer tokens.Signer, value *big.Int, method string, args ...interface{}) (*tokens.MintReceipt, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("Pack %s error. %v", method, err)
	}
	if value == nil {
		value = big.NewInt(0)
	}

	hash, err := signer.SendTransaction(ctx, &tokens.Call{To: c.address, Value: value, Data: data})
	if err != nil {
		return nil, &tokens.TxError{Method: method, Err: err}
	}
	gl.Info("Send %s tx. %s : %s", method, signer.Address().Hex(), hash.Hex())

	receipt, err := waitMined(ctx, c.reader, method, hash, c.poll)
	if err != nil {
		return nil, err
	}
	return &tokens.MintReceipt{TxHash: hash, Logs: receipt.Logs}, nil
}

// MintContract is the payable mintNFT() entry point with its fixed price.
type MintContract struct {
	contract
	price *big.Int
}

func NewMintContract(conAddr string, price *big.Int, reader tokens.ReceiptReader, poll time.Duration) *MintContract {
	return &MintContract{
		contract: contract{
			abi:     MintABI,
			address: common.HexToAddress(conAddr),
			reader:  reader,
			poll:    poll,
		},
		price: new(big.Int).Set(price),
	}
}

func (mc *MintContract) Request() tokens.MintRequest {
	return tokens.MintRequest{Contract: mc.address, Price: new(big.Int).Set(mc.price)}
}

// Mint pays the price to mintNFT() and returns the receipt once it is mined.
func (mc *MintContract) Mint(ctx context.Context, signer tokens.Signer) (*tokens.MintReceipt, error) {
	return mc.send(ctx, signer, mc.price, MethodMint)
}

// TokenID reads the minted token id from the receipt's Transfer log.
func (mc *MintContract) TokenID(receipt *tokens.MintReceipt) (*big.Int, error) {
	return TokenID(mc.abi, receipt)
}

// WrapContract is the wrap(uint256,string) entry point.
type WrapContract struct {
	contract
}

func NewWrapContract(conAddr string, reader tokens.ReceiptReader, poll time.Duration) *WrapContract {
	return &WrapContract{
		contract: contract{
			abi:     WrapABI,
			address: common.HexToAddress(conAddr),
			reader:  reader,
			poll:    poll,
		},
	}
}

func (wc *WrapContract) Request(tokenID *big.Int, tokenURI string) tokens.WrapRequest {
	return tokens.WrapRequest{Contract: wc.address, TokenID: tokenID, TokenURI: tokenURI}
}

// Wrap binds tokenURI to the token and returns the wrap tx hash once it is mined.
func (wc *WrapContract) Wrap(ctx context.Context, signer tokens.Signer, req tokens.WrapRequest) (common.Hash, error) {
	if req.TokenID == nil {
		return common.Hash{}, tokens.ErrTokenIDNotFound
	}
	receipt, err := wc.send(ctx, signer, nil, MethodWrap, req.TokenID, req.TokenURI)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}
