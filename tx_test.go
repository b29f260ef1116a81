package bazaar

import (
	"testing"

	"github.com/iov-one/bazaar/errors"
)

type pingMsg struct {
	Text string
}

func (pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

type otherMsg struct{}

func (otherMsg) Path() string     { return "test/other" }
func (otherMsg) Validate() error { return nil }

type msgTx struct {
	msg Msg
}

func (tx msgTx) GetMsg() (Msg, error) { return tx.msg, nil }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		wantErr *errors.Error
		want    string
	}{
		"valid message": {
			tx:   msgTx{msg: &pingMsg{Text: "pong"}},
			want: "pong",
		},
		"invalid message": {
			tx:      msgTx{msg: &pingMsg{}},
			wantErr: errors.ErrEmpty,
		},
		"unexpected message type": {
			tx:      msgTx{msg: otherMsg{}},
			wantErr: errors.ErrType,
		},
		"missing message": {
			tx:      msgTx{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var msg pingMsg
			err := LoadMsg(tc.tx, &msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
			if msg.Text != tc.want {
				t.Fatalf("unexpected message: %v", msg)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(msgTx{msg: &pingMsg{}}); got != "test/ping" {
		t.Fatalf("unexpected path: %q", got)
	}
	if got := GetPath(msgTx{}); got != "(missing)" {
		t.Fatalf("unexpected path: %q", got)
	}
}
