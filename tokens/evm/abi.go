package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const mintABIJSON = `[
	{"inputs":[],"name":"mintNFT","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"approve","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"Transfer","type":"event"}
]`

const wrapABIJSON = `[
	{"inputs":[{"internalType":"uint256","name":"internalTokenId","type":"uint256"},{"internalType":"string","name":"newTokenURI","type":"string"}],"name":"wrap","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const (
	MethodMint    = "mintNFT"
	MethodWrap    = "wrap"
	EventTransfer = "Transfer"
)

var (
	MintABI = mustABI(mintABIJSON)
	WrapABI = mustABI(wrapABIJSON)
)

func mustABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}
