package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mintwrap/tokens"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrNoWalletAvailable = errors.New("No wallet found. Please configure a keystore or a wallet relay.")
	ErrNotConnected      = errors.New("Connect your wallet first!")
)

// Provider is one way of obtaining a signing capability.
type Provider interface {
	Name() string
	Available() bool
	Enable(ctx context.Context) (tokens.Signer, error)
}

// Session holds the connected address and its signer. One session per host; a new
// connect overwrites the previous one.
type Session struct {
	mu       sync.RWMutex
	signer   tokens.Signer
	provider string
}

// Connect enables the first available provider. An available provider that fails to
// enable ends the attempt with its error.
func (s *Session) Connect(ctx context.Context, providers ...Provider) (common.Address, error) {
	for _, p := range providers {
		if p == nil || !p.Available() {
			continue
		}
		signer, err := p.Enable(ctx)
		if err != nil {
			return common.Address{}, fmt.Errorf("%s wallet error. %v", p.Name(), err)
		}
		s.mu.Lock()
		s.signer = signer
		s.provider = p.Name()
		s.mu.Unlock()
		return signer.Address(), nil
	}
	return common.Address{}, ErrNoWalletAvailable
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	s.signer = nil
	s.provider = ""
	s.mu.Unlock()
}

func (s *Session) Signer() (tokens.Signer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.signer == nil {
		return nil, ErrNotConnected
	}
	return s.signer, nil
}

func (s *Session) Address() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.signer == nil {
		return common.Address{}, false
	}
	return s.signer.Address(), true
}

func (s *Session) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// ShortAddress abbreviates 0xABCDEF...1234 to 0xABCD...1234.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
