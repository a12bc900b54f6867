// Package stacks implements the wallet operations exposed to the HTTP and
// CLI front-ends: wallet lifecycle, account management, and read-only
// chain queries. Transaction signing and broadcast are left to external
// collaborators, which consume the session's key material while unlocked.
package stacks

import (
	"github.com/stacksline/stacks-wallet/internal/crypto"
	"github.com/stacksline/stacks-wallet/internal/model"
	"github.com/stacksline/stacks-wallet/internal/session"
	"github.com/stacksline/stacks-wallet/internal/store"
)

// Service wires the wallet stores and the session together. One instance
// per process; the session reference is shared with any collaborator that
// needs signing material.
type Service struct {
	index     *store.IndexStore
	keystores *store.KeystoreStore
	session   *session.Session
	network   model.Network
	params    crypto.Params
}

// NewService creates a wallet service. params controls the scrypt cost of
// newly written keystores (existing keystores carry their own).
func NewService(index *store.IndexStore, keystores *store.KeystoreStore, sess *session.Session, network model.Network, params crypto.Params) *Service {
	return &Service{
		index:     index,
		keystores: keystores,
		session:   sess,
		network:   network,
		params:    params,
	}
}

// Session exposes the underlying session for collaborators that sign and
// broadcast transactions.
func (s *Service) Session() *session.Session {
	return s.session
}
