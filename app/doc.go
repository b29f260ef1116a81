/*
Package app contains the building blocks of an ABCI application.

StoreApp owns the state, answers queries and handles the block life cycle.
BaseApp adds transaction processing on top of it: every transaction is
decoded, passed through a chain of decorators and routed to the handler
registered for its message path. Events emitted by successful
transactions are published on the EventBus once their block is
committed.
*/
package app
