/*
Package errors implements the error registry used by all bazaar extensions.

Every error returned to a client wraps one of the root errors declared with
Register. The root error carries an ABCI code, so a client can tell the kind
of a failure apart without parsing messages:

	if market.ErrNotListed.Is(err) {
		// ...
	}

Extensions declare their own root errors with Register(code, description)
during program start up. Codes are unique and a duplicated code panics.

Create errors at the point of failure using ErrXyz.New, Wrap or Wrapf so that
a stack trace is attached. Wrapping many times only records the first stack.

	%s is the error message
	%+v is the message followed by the stack trace of the creation point
*/
package errors
