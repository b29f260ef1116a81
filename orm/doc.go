/*
Package orm provides an easy to use db wrapper on top of a KVStore.

A ModelBucket stores models of a single type under a unique prefix, keeps
any number of secondary indexes up to date on every write and exposes
both the primary and the secondary keys through the query router.
Sequence generates monotonically increasing identifiers.
*/
package orm
