/*
Package x contains the standard extensions of quorum.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct an application.
This package holds the authentication helpers shared by all of
them: an Authenticator reveals which conditions are satisfied in
the current context, either by a signature (x/sigs) or by a
derived signer granted by the multisig execution gate.
*/
package x
