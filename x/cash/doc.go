/*
Package cash defines a simple implementation of holding and sending coins
between wallets.

There is no logic in the coins (tokens), except that the balance of any
coin may not go below zero. Thus, this implementation is referred to as
cash. Simple and safe.

A wallet is stored under the address of its owner. Addresses derived from
a condition that no key controls (for example a lending vault) are valid
wallet owners as well, and only the extension owning the condition can
move their funds.
*/
package cash
