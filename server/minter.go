package server

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"time"

	"mintwrap/gl"
	"mintwrap/log"
	"mintwrap/model"
	"mintwrap/tokens"
	"mintwrap/wallet"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pborman/uuid"
)

var ErrMintInFlight = errors.New("A mint is already in progress")

type MintContract interface {
	Mint(ctx context.Context, signer tokens.Signer) (*tokens.MintReceipt, error)
	TokenID(receipt *tokens.MintReceipt) (*big.Int, error)
}

type WrapContract interface {
	Request(tokenID *big.Int, tokenURI string) tokens.WrapRequest
	Wrap(ctx context.Context, signer tokens.Signer, req tokens.WrapRequest) (common.Hash, error)
}

// Journal persists attempts. model.Journal is the mysql one.
type Journal interface {
	Begin(o *model.MintOrder) error
	Update(o *model.MintOrder) error
	Fail(o *model.MintOrder) error
	Connected(account, provider string) error
}

type Config struct {
	Providers []wallet.Provider
	Mint      MintContract
	Wrap      WrapContract
	URIMode   string
	TokenURI  string
	Reporter  Reporter
	Journal   Journal
	Explorer  func(txHash string) string
}

// Minter runs connect and the mint-then-wrap sequence against a session.
// Only one sequence runs at a time.
type Minter struct {
	cfg     Config
	running atomic.Bool
}

type Result struct {
	RunID    string
	MintTx   common.Hash
	TokenID  *big.Int
	TokenURI string
	WrapTx   common.Hash
}

type Outcome struct {
	Result *Result
	Err    error
}

func NewMinter(cfg Config) *Minter {
	if cfg.Explorer == nil {
		cfg.Explorer = func(txHash string) string { return txHash }
	}
	if cfg.Reporter == nil {
		cfg.Reporter = Reporters(nil)
	}
	return &Minter{cfg: cfg}
}

func (m *Minter) Connect(ctx context.Context, sess *wallet.Session) (common.Address, error) {
	m.cfg.Reporter.Report(Connecting, "Connecting wallet...")
	addr, err := sess.Connect(ctx, m.cfg.Providers...)
	if err != nil {
		gl.Error("Connect wallet error. %v", err)
		log.Errorf("connect wallet: %v", err)
		m.cfg.Reporter.Report(Failed, err.Error())
		return addr, err
	}

	provider := sess.Provider()
	connects.WithLabelValues(provider).Inc()
	gl.Info("Wallet connected. %s : %s", provider, addr.Hex())
	if m.cfg.Journal != nil {
		if err := m.cfg.Journal.Connected(addr.Hex(), provider); err != nil {
			gl.Error("Record account error. %s : %v", addr.Hex(), err)
		}
	}
	m.cfg.Reporter.Report(Connected, "Wallet connected")
	return addr, nil
}

func (m *Minter) Disconnect(sess *wallet.Session) {
	sess.Disconnect()
	m.cfg.Reporter.Report(Idle, "Wallet Not Connected")
}

func (m *Minter) Busy() bool {
	return m.running.Load()
}

// MintAndWrap runs one sequence and waits for it.
func (m *Minter) MintAndWrap(ctx context.Context, sess *wallet.Session) (*Result, error) {
	ch, err := m.Start(ctx, sess)
	if err != nil {
		return nil, err
	}
	o := <-ch
	return o.Result, o.Err
}

// Start claims the minter and runs the sequence in the background. It fails at once,
// without touching the network, when the session isn't connected or a sequence is running.
func (m *Minter) Start(ctx context.Context, sess *wallet.Session) (<-chan Outcome, error) {
	signer, err := sess.Signer()
	if err != nil {
		attempts.WithLabelValues(resultNotConnected).Inc()
		log.Errorf("mint: %v", err)
		m.cfg.Reporter.Report(Failed, err.Error())
		return nil, err
	}
	if !m.running.CompareAndSwap(false, true) {
		return nil, ErrMintInFlight
	}

	inFlight.Set(1)
	ch := make(chan Outcome, 1)
	go func() {
		res, err := m.run(ctx, signer)
		inFlight.Set(0)
		m.running.Store(false)
		ch <- Outcome{Result: res, Err: err}
		close(ch)
	}()
	return ch, nil
}

func (m *Minter) run(ctx context.Context, signer tokens.Signer) (*Result, error) {
	res := &Result{RunID: uuid.New()}
	order := &model.MintOrder{
		RunID:   res.RunID,
		Account: signer.Address().Hex(),
		State:   model.StateMinting,
		Ts:      time.Now().UnixMilli(),
	}
	m.journal(order, Journal.Begin)

	m.cfg.Reporter.Report(Minting, "Minting...")
	receipt, err := m.cfg.Mint.Mint(ctx, signer)
	if err != nil {
		return res, m.abort(order, resultMintFailed, err)
	}
	res.MintTx = receipt.TxHash
	order.MintTx, order.State = receipt.TxHash.Hex(), model.StateMinted
	m.cfg.Reporter.Report(Minted, "Minted! TX: "+m.cfg.Explorer(receipt.TxHash.Hex()))

	tokenID, err := m.cfg.Mint.TokenID(receipt)
	if err != nil {
		return res, m.abort(order, resultTokenNotFound, err)
	}
	res.TokenID = tokenID
	res.TokenURI = tokens.TokenURI(m.cfg.URIMode, m.cfg.TokenURI, tokenID)
	order.TokenID, order.TokenURI = tokenID.String(), res.TokenURI
	m.journal(order, Journal.Update)
	gl.Info("Minted token. %s : %s : %s", res.RunID, order.MintTx, order.TokenID)

	m.cfg.Reporter.Report(Wrapping, "Wrapping NFT...")
	wrapTx, err := m.cfg.Wrap.Wrap(ctx, signer, m.cfg.Wrap.Request(tokenID, res.TokenURI))
	if err != nil {
		return res, m.abort(order, resultWrapFailed, err)
	}
	res.WrapTx = wrapTx
	order.WrapTx, order.State = wrapTx.Hex(), model.StateWrapped
	m.journal(order, Journal.Update)

	attempts.WithLabelValues(resultWrapped).Inc()
	gl.Info("Wrapped token. %s : %s : %s", res.RunID, order.TokenID, order.WrapTx)
	m.cfg.Reporter.Report(Wrapped, "Wrapped NFT!")
	return res, nil
}

func (m *Minter) abort(order *model.MintOrder, result string, err error) error {
	attempts.WithLabelValues(result).Inc()
	order.State, order.Error = model.StateFailed, err.Error()
	m.journal(order, Journal.Fail)

	gl.Error("Mint and wrap %s. %s : %v", result, order.RunID, err)
	log.WithField("run", order.RunID).WithField("account", order.Account).WithField("mint_tx", order.MintTx).Errorf("%s: %v", result, err)
	m.cfg.Reporter.Report(Failed, err.Error())
	return err
}

func (m *Minter) journal(order *model.MintOrder, write func(Journal, *model.MintOrder) error) {
	if m.cfg.Journal == nil {
		return
	}
	if err := write(m.cfg.Journal, order); err != nil {
		gl.Error("Journal the mint order error. %s : %v", order.RunID, err)
	}
}
