package lendpool

import (
	"testing"

	"github.com/iov-one/lendpool/errors"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct {
	Text string
}

func (pingMsg) Path() string               { return "test/ping" }
func (pingMsg) Marshal() ([]byte, error)   { return nil, nil }
func (*pingMsg) Unmarshal(bz []byte) error { return nil }
func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

type otherMsg struct {
	pingMsg
}

type msgTx struct {
	msg Msg
	err error
}

func (tx msgTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	var msg pingMsg
	err := LoadMsg(msgTx{msg: &pingMsg{Text: "hello"}}, &msg)
	assert.NoError(t, err)
	assert.Equal(t, "hello", msg.Text)

	err = LoadMsg(msgTx{msg: &pingMsg{}}, &msg)
	assert.True(t, errors.ErrEmpty.Is(err))

	err = LoadMsg(msgTx{msg: &otherMsg{}}, &msg)
	assert.True(t, errors.ErrType.Is(err))

	err = LoadMsg(msgTx{msg: &pingMsg{Text: "x"}}, msg)
	assert.True(t, errors.ErrType.Is(err))

	err = LoadMsg(msgTx{err: errors.ErrInput}, &msg)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", GetPath(msgTx{msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", GetPath(msgTx{err: errors.ErrInput}))
}
