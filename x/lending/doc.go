/*
Package lending implements interest bearing pools.

An admin creates a pool for a single asset with a fixed yearly interest
rate, a loan term and a payment frequency. Every pool publishes the hash
of the agreement a depositor must accept. Deposited funds, without the
fee, are kept by the pool vault. The vault account is controlled by a
condition derived from the pool ID, no private key exists for it.

Interest of a deposit is fixed when it is created. It unlocks every
payment frequency months in equal parts and is fully available at
maturity. The owner can withdraw unlocked interest at any time unless the
pool is paused. Every withdrawal is recorded on the deposit so the same
interest cannot be paid out twice.

Month is always 30 days long.
*/
package lending
