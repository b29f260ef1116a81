/*
Package cash keeps the coin balances of all accounts.

A wallet holds any number of currencies, each identified by its ticker.
Coins can be moved between wallets by the owner of the source wallet. A
wallet owner can block the wallet, after which it refuses all incoming
transfers. Other extensions move coins through the Controller.
*/
package cash
