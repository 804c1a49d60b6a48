package wallet

import (
	"context"
	"fmt"

	"mintwrap/gl"
	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/onrik/ethrpc"
)

// RelayClient is the remote wallet's json-rpc, it signs and submits on its side.
type RelayClient interface {
	EthAccounts() ([]string, error)
	EthSendTransaction(t ethrpc.T) (string, error)
}

// RelayProvider connects to a remote wallet relay.
type RelayProvider struct {
	Url    string
	client RelayClient
}

func NewRelayProvider(url string) *RelayProvider {
	p := &RelayProvider{Url: url}
	if url != "" {
		p.client = ethrpc.New(url)
	}
	return p
}

func NewRelayProviderWithClient(url string, c RelayClient) *RelayProvider {
	return &RelayProvider{Url: url, client: c}
}

func (p *RelayProvider) Name() string {
	return "relay"
}

func (p *RelayProvider) Available() bool {
	return p.Url != "" && p.client != nil
}

func (p *RelayProvider) Enable(ctx context.Context) (tokens.Signer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accounts, err := p.client.EthAccounts()
	if err != nil {
		return nil, fmt.Errorf("eth_accounts error. %v", err)
	}
	if len(accounts) == 0 || !common.IsHexAddress(accounts[0]) {
		return nil, fmt.Errorf("relay has no account. %v", accounts)
	}
	return &RelaySigner{client: p.client, address: common.HexToAddress(accounts[0])}, nil
}

type RelaySigner struct {
	client  RelayClient
	address common.Address
}

func (rs *RelaySigner) Address() common.Address {
	return rs.address
}

func (rs *RelaySigner) SendTransaction(ctx context.Context, call *tokens.Call) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, err
	}
	t := ethrpc.T{
		From:  rs.address.Hex(),
		To:    call.To.Hex(),
		Gas:   int(gl.GasLimit),
		Value: call.Value,
		Data:  hexutil.Encode(call.Data),
	}
	txHash, err := rs.client.EthSendTransaction(t)
	if err != nil {
		return common.Hash{}, err
	}
	return common.HexToHash(txHash), nil
}
