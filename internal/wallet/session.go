package wallet

import (
	"errors"
	"strings"
)

// State is the connection state of a wallet session.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Action is a game operation guarded by the session.
type Action string

const (
	ActionBattle Action = "battle"
	ActionMint   Action = "mint"
	ActionStake  Action = "stake"
	ActionSelect Action = "select"
)

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrNoNFTSelected      = errors.New("no NFT selected")
	ErrInvalidAddress     = errors.New("invalid wallet address")
	ErrAlreadyConnected   = errors.New("wallet already connected to a different address")
	ErrNotConnecting      = errors.New("wallet is not connecting")
	ErrUnknownAction      = errors.New("unknown action")
)

// Session is the per-wallet state machine:
//
//	disconnected -> connecting -> connected
//	any          -> disconnected (Disconnect, or Fail while connecting)
//
// The selected NFT only exists while connected.
type Session struct {
	Address    string
	State      State
	SelectedID string
}

// New returns a disconnected session.
func New() *Session {
	return &Session{State: StateDisconnected}
}

// Restore rebuilds a session from persisted fields. Unknown states are
// treated as disconnected, and a selection without a connection is dropped.
func Restore(address, state, selected string) *Session {
	s := &Session{Address: address, State: State(state), SelectedID: selected}
	switch s.State {
	case StateConnected, StateConnecting:
	default:
		s.State = StateDisconnected
	}
	if s.State != StateConnected {
		s.SelectedID = ""
	}
	return s
}

// BeginConnect moves a disconnected session into connecting. It is a no-op
// when a connection attempt is already in flight.
func (s *Session) BeginConnect() error {
	switch s.State {
	case StateDisconnected:
		s.State = StateConnecting
		return nil
	case StateConnecting:
		return nil
	default:
		return ErrAlreadyConnected
	}
}

// Connect completes a connection for address. Reconnecting the same address
// keeps the current selection.
func (s *Session) Connect(address string) error {
	address = NormalizeAddress(address)
	if address == "" {
		return ErrInvalidAddress
	}
	if s.State == StateConnected {
		if s.Address == address {
			return nil
		}
		return ErrAlreadyConnected
	}
	if s.Address != address {
		s.SelectedID = ""
	}
	s.Address = address
	s.State = StateConnected
	return nil
}

// Fail aborts an in-flight connection attempt.
func (s *Session) Fail() error {
	if s.State != StateConnecting {
		return ErrNotConnecting
	}
	s.State = StateDisconnected
	return nil
}

// Disconnect returns to the disconnected state and clears the selection.
// The address is kept so the caller can clean up per-wallet data.
func (s *Session) Disconnect() {
	s.State = StateDisconnected
	s.SelectedID = ""
}

// Select sets the NFT used for battles and staking. An empty id clears it.
func (s *Session) Select(nftID string) error {
	if err := s.Permit(ActionSelect); err != nil {
		return err
	}
	s.SelectedID = strings.TrimSpace(nftID)
	return nil
}

// Connected reports whether the session is connected.
func (s *Session) Connected() bool { return s.State == StateConnected }

// Permit returns nil when action may run in the current state.
func (s *Session) Permit(action Action) error {
	switch action {
	case ActionBattle, ActionStake:
		if !s.Connected() {
			return ErrWalletNotConnected
		}
		if s.SelectedID == "" {
			return ErrNoNFTSelected
		}
		return nil
	case ActionMint, ActionSelect:
		if !s.Connected() {
			return ErrWalletNotConnected
		}
		return nil
	default:
		return ErrUnknownAction
	}
}

// NormalizeAddress trims and lower-cases a wallet address so lookups are
// stable regardless of how the client formats it.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
