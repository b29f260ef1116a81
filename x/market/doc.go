/*
Package market implements a fixed price marketplace for assets kept in an
external registry.

A seller lists an asset it owns after approving LedgerAddress to transfer
it. A buyer pays at least the listed price. The payment is kept by the
ledger and credited to the seller, who can withdraw it at any time.

Every operation first validates, then updates the ledger state and only
then calls the registry or the bank. Code running during those calls
observes the final state of the operation, so a listing cannot be sold
twice and proceeds cannot be withdrawn twice.
*/
package market
