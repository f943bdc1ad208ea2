/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain sequences for replay protection.

Every owner of a multisig group proves its identity through
this package: a verified signature grants the owner's ed25519
condition in the context.
*/
package sigs
