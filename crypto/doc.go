/*
Package crypto provides the ed25519 credentials used to sign transactions
and the derived keys used as signers that have no credential at all.

A public key is turned into a Condition "sigs/ed25519/<key>", and the
Condition into an Address. A derived key is hashed from seeds and a bump
byte; it is only accepted when it is not a point on the ed25519 curve, so
no private key can ever produce a signature for it.
*/
package crypto
