/*
Package utils contains the decorators every application stacks
around its router: panic recovery, logging, metrics, action tags
and savepoints that isolate the writes of a failed transaction.
*/
package utils
