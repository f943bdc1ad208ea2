/*
Package weavetest provides mocks and helpers to test handlers,
decorators and the application wiring without running a node.
*/
package weavetest
