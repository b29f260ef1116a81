package bazaar

import (
	"reflect"

	"github.com/iov-one/bazaar/errors"
)

// Msg is a request for the state machine to take an action. It must be
// validated by the handlers. All authentication information is in the
// wrapping Tx.
type Msg interface {
	// Path is used by the Router to locate the proper Handler. It must
	// be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message content. It does
	// not access the state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal. Unmarshal almost always
// requires a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is the data sent from the user to the chain. It includes the message
// along with the information needed to authenticate the sender.
//
// Each application defines its own Tx type.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder parses bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if there is none.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message carried by the transaction into the
// destination. Destination must be a pointer to the expected message
// type. The message is validated.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction without a message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	switch {
	case src.Type().AssignableTo(dest.Elem().Type()):
		dest.Elem().Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(dest.Elem().Type()):
		dest.Elem().Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
