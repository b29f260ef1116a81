/*
Package bazaar defines the interfaces shared by every part of the
marketplace state machine: storage, transactions, handlers, events and
the context helpers that carry block information between them.

We pass data between the app, the decorators and the handlers through a
context.Context. For every value T that the context carries there are two
functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics when the value was already set, so that lower level code
cannot overwrite what the app declared (eg. height, header).
*/
package bazaar
