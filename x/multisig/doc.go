/*
Package multisig lets a group of owners jointly authorize actions.

A Group holds an ordered, unique set of owner addresses, a threshold
and an owner set version. Every group has a derived signer address:
a key computed from the group address and a bump that is not a point
on the ed25519 curve, so no private key can ever sign for it. The only
way to act as that signer is to execute a proposal that gathered enough
approvals.

A Proposal stores a list of instructions (serialized messages together
with the accounts they reference) under an address derived from a
caller chosen nonce. The proposal is stamped with the owner set version
of its group. Owners approve it, and once the number of approvals
reaches the threshold any current owner may execute it. Execution runs
all instructions atomically with the group signer granted in the
context, then closes the proposal and refunds its balance.

Replacing the owner set bumps the version and so permanently disables
every proposal created under the previous set. Both the owner set and
the threshold can only be changed by the group signer, that is by an
executed proposal of the group itself.
*/
package multisig
