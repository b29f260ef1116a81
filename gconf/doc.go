/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps a single configuration entity stored under the
"_c:<package name>" key. The entity is created from the "conf" section of
the genesis file and can later be patched with a message signed by the
configuration owner.

Not being able to load a configuration is a critical condition for the
application. Extensions report it as an error and the transaction fails.
*/
package gconf
