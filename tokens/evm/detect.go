package evm

import (
	"math/big"

	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

const tokenIDField = "tokenId"

// Match is the result of decoding one log entry as a Transfer.
// A log that isn't a Transfer, or can't be decoded as one, is a miss and not an error.
type Match struct {
	Found   bool
	TokenID *big.Int
	Index   uint
}

// TokenID returns the id from the first receipt log which decodes as a Transfer of the contract abi.
func TokenID(contract abi.ABI, receipt *tokens.MintReceipt) (*big.Int, error) {
	if receipt == nil {
		return nil, tokens.ErrTokenIDNotFound
	}
	for _, vLog := range receipt.Logs {
		if m := MatchTransfer(contract, vLog); m.Found {
			return m.TokenID, nil
		}
	}
	return nil, tokens.ErrTokenIDNotFound
}

func MatchTransfer(contract abi.ABI, vLog *types.Log) Match {
	if vLog == nil || len(vLog.Topics) == 0 {
		return Match{}
	}
	event, err := contract.EventByID(vLog.Topics[0])
	if err != nil || event.Name != EventTransfer {
		return Match{}
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	args := make(map[string]interface{})
	if err := abi.ParseTopicsIntoMap(args, indexed, vLog.Topics[1:]); err != nil {
		return Match{}
	}
	if len(event.Inputs.NonIndexed()) > 0 {
		if err := event.Inputs.UnpackIntoMap(args, vLog.Data); err != nil {
			return Match{}
		}
	}

	value, ok := args[tokenIDField]
	if !ok && len(event.Inputs) > 2 {
		value, ok = args[event.Inputs[2].Name]
	}
	id, isInt := value.(*big.Int)
	if !ok || !isInt || id == nil {
		return Match{}
	}
	return Match{Found: true, TokenID: new(big.Int).Set(id), Index: vLog.Index}
}
