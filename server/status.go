package server

import "sync"

type Phase int

const (
	Idle Phase = iota
	Connecting
	Connected
	Minting
	Minted
	Wrapping
	Wrapped
	Failed
)

var phaseNames = [...]string{"idle", "connecting", "connected", "minting", "minted", "wrapping", "wrapped", "failed"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Reporter receives every phase change with the text to show for it.
type Reporter interface {
	Report(p Phase, msg string)
}

type Reporters []Reporter

func (rs Reporters) Report(p Phase, msg string) {
	for _, r := range rs {
		if r != nil {
			r.Report(p, msg)
		}
	}
}

// Board keeps the last reported message only.
type Board struct {
	mu    sync.RWMutex
	phase Phase
	msg   string
}

func (b *Board) Report(p Phase, msg string) {
	b.mu.Lock()
	b.phase, b.msg = p, msg
	b.mu.Unlock()
}

func (b *Board) Last() (Phase, string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.phase, b.msg
}

// Class is the style the host gives the status text.
func (b *Board) Class() string {
	switch p, _ := b.Last(); p {
	case Idle:
		return "disconnected"
	case Failed:
		return "error"
	case Minted, Wrapped:
		return "success"
	case Connected:
		return "connected"
	}
	return "info"
}
