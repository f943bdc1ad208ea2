/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under the "_c:<pkg>" key.
The object is loaded from the genesis "conf" section and read back by the
handlers that depend on it.
*/
package gconf
