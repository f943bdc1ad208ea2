/*
Package cash is a minimal single-denomination balance ledger.

Balances may move between accounts but never go below zero.
Multisig proposals use it as the refund sink when a proposal
account is closed, and its SendMsg is the most common instruction
a group executes.
*/
package cash
