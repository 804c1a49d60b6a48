package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"mintwrap/log"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
)

const DefaultFile = "./config/conf.toml"

const (
	URIAppend = "append"
	URIFixed  = "fixed"
)

var (
	Env    string
	Chain  ChainConfig
	Mint   MintConfig
	Wrap   WrapConfig
	Wallet WalletConfig
	Server ServerConfig
	Db     Database
	Email  EmailConfig
)

type ChainConfig struct {
	ChainID     int64
	NodeUrl     string
	ExplorerUrl string
}

type MintConfig struct {
	Contract string
	Price    string // in ether, "0.01"
}

type WrapConfig struct {
	Contract string
	TokenURI string
	URIMode  string // "append" or "fixed"
}

// WalletConfig names the two providers tried by connect, in order.
type WalletConfig struct {
	KeyStore   string
	Passphrase string
	Relay      string
}

type ServerConfig struct {
	Listen      string
	ReceiptPoll time.Duration // seconds
	GasLimit    uint64
}

type Database struct {
	Host   string
	Port   string
	DbName string
	Usr    string
	Pwd    string
}

type EmailConfig struct {
	Host string
	Port string
	Usr  string
	Pwd  string
	From string
	To   []string
}

// AllConfig is the layout of conf.toml.
type AllConfig struct {
	Env    string
	Chain  ChainConfig
	Mint   MintConfig
	Wrap   WrapConfig
	Wallet WalletConfig
	Server ServerConfig
	Db     Database
	Email  EmailConfig
}

func Default() *AllConfig {
	return &AllConfig{
		Env: "product",
		Chain: ChainConfig{
			ChainID:     56,
			NodeUrl:     "https://bsc-dataseed.binance.org/",
			ExplorerUrl: "https://bscscan.com",
		},
		Mint: MintConfig{
			Contract: "0x1BEe8d11f11260A4E39627EDfCEB345aAfeb57d9",
			Price:    "0.01",
		},
		Wrap: WrapConfig{
			Contract: "0xa069fd4ed3be5262166a5392ee31467951822206",
			TokenURI: "ipfs://bafybeig6wisourp6cvqqczwyfa6nyz7jwbsbbgbilz3d3m2maenxnzvxui",
			URIMode:  URIAppend,
		},
		Server: ServerConfig{
			Listen:      "127.0.0.1:8546",
			ReceiptPoll: 3,
			GasLimit:    300000,
		},
	}
}

// Load load config file, panic if it is not right
func Load(file string) {
	all := Default()
	if _, err := toml.DecodeFile(file, all); err != nil {
		log.Panicf("Decode config file error. %s : %v", file, err)
	}
	if err := all.Check(); err != nil {
		log.Panicf("Config file is not right. %s : %v", file, err)
	}
	Set(all)
}

// Decode parses toml text over the defaults.
func Decode(data string) (*AllConfig, error) {
	all := Default()
	if _, err := toml.Decode(data, all); err != nil {
		return nil, err
	}
	if err := all.Check(); err != nil {
		return nil, err
	}
	return all, nil
}

func Set(all *AllConfig) {
	Env = all.Env
	Chain = all.Chain
	Mint = all.Mint
	Wrap = all.Wrap
	Wallet = all.Wallet
	Server = all.Server
	Db = all.Db
	Email = all.Email
}

func (all *AllConfig) Check() error {
	if !common.IsHexAddress(all.Mint.Contract) {
		return fmt.Errorf("mint contract address is not right. %s", all.Mint.Contract)
	}
	if !common.IsHexAddress(all.Wrap.Contract) {
		return fmt.Errorf("wrap contract address is not right. %s", all.Wrap.Contract)
	}
	if _, err := ParseEther(all.Mint.Price); err != nil {
		return fmt.Errorf("mint price is not right. %v", err)
	}
	all.Wrap.URIMode = strings.ToLower(all.Wrap.URIMode)
	if all.Wrap.URIMode != URIAppend && all.Wrap.URIMode != URIFixed {
		return fmt.Errorf("wrap uri mode don't support. %s", all.Wrap.URIMode)
	}
	if all.Chain.ChainID <= 0 {
		return fmt.Errorf("chain id is not right. %d", all.Chain.ChainID)
	}
	if all.Server.ReceiptPoll <= 0 {
		all.Server.ReceiptPoll = 3
	}
	return nil
}

var weiPerEther = new(big.Rat).SetInt(big.NewInt(1e18))

// ParseEther converts a decimal ether amount to wei. Fractions below one wei are refused.
func ParseEther(s string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("%q is negative", s)
	}
	r.Mul(r, weiPerEther)
	if !r.IsInt() {
		return nil, fmt.Errorf("%q has more than 18 decimals", s)
	}
	return new(big.Int).Set(r.Num()), nil
}

// MintPrice is the configured price in wei. Load has already checked it.
func MintPrice() *big.Int {
	p, _ := ParseEther(Mint.Price)
	return p
}

// Explorer returns the explorer link of a transaction.
func Explorer(txHash string) string {
	return strings.TrimSuffix(Chain.ExplorerUrl, "/") + "/tx/" + txHash
}
