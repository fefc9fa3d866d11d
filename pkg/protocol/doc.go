/*
Package protocol implements the line-oriented request/response protocol of
a Sequent session.

Each input line carries one JSON request; each request produces exactly
one compact JSON response line, flushed before the next line is read. The
protocol is strictly half-duplex with no pipelining. The Dispatcher owns
the method table and the error encoding; the Loop drives it until the
session commits or input ends.
*/
package protocol
