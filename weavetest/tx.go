package weavetest

import "github.com/iov-one/lendpool"

// Tx is a transaction carrying any message. A set Err is returned by
// GetMsg instead of the message.
type Tx struct {
	Msg lendpool.Msg
	Err error
}

var _ lendpool.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (lendpool.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Msg is a message routed to RoutePath. Serialized is both what Marshal
// returns and what Unmarshal stores. A set Err is returned by every
// method that can fail.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ lendpool.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}
