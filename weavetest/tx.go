package weavetest

import "github.com/iov-one/quorum"

// Tx carries Msg. A set Err is returned instead of the message.
type Tx struct {
	Msg quorum.Msg
	Err error
}

var _ quorum.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (quorum.Msg, error) { return tx.Msg, tx.Err }

// Marshal and Unmarshal are never called by handlers under test.
func (tx *Tx) Marshal() ([]byte, error)  { panic("weavetest.Tx cannot be serialized") }
func (tx *Tx) Unmarshal(b []byte) error { panic("weavetest.Tx cannot be serialized") }

// Msg routes to RoutePath and serializes to Serialized. A set Err fails
// every method.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ quorum.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}
