/*
Package batch implements batch transactions.

A batch message holds a list of serialized messages that the application
router can process. All of them run inside the one transaction, in order,
and the transaction fails if any of them fails. Signatures and other
decorators that do not rely on the message are applied only once for the
whole batch.

Batches let a single owner create a proposal, approve it and execute it
in one transaction when the group threshold allows it.
*/
package batch
