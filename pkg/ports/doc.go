/*
Package ports defines the driven ports (interfaces) for the Sequent core.

The central interface is Engine: the capability set the session layer
requires from a proof-construction engine. The core never assumes a
particular engine; anything that can capture and restore its state and
execute steps under a budget can back a session.
*/
package ports
