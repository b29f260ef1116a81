package bazaartest

import "github.com/iov-one/bazaar"

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is the message processed by this transaction.
	Msg bazaar.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ bazaar.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message routed by its path.
type Msg struct {
	// RoutePath is returned by Path and consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ bazaar.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
