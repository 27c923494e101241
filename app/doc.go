/*
Package app contains the pieces that turn a set of handlers into a running
ledger: the message router, the decorator chain and the store application
that delivers transactions against a committing store.

Every transaction is delivered inside its own cache wrap. A failing
transaction leaves no trace in the state, a successful one becomes visible
to the following transactions and is persisted on the next Commit.
*/
package app
