package evm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mintwrap/gl"
	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// waitMined polls the receipt of hash until it is mined or ctx ends.
func waitMined(ctx context.Context, reader tokens.ReceiptReader, method string, hash common.Hash, poll time.Duration) (*types.Receipt, error) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		receipt, err := reader.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, &tokens.TxError{Method: method, Hash: hash, Err: fmt.Errorf("transaction %s failed", hash.Hex())}
			}
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, &tokens.TxError{Method: method, Hash: hash, Err: fmt.Errorf("TransactionReceipt error. %s, %v", hash.Hex(), err)}
		}
		gl.Info("tx is pending status. %s : %s", method, hash.Hex())

		select {
		case <-ctx.Done():
			return nil, &tokens.TxError{Method: method, Hash: hash, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}
