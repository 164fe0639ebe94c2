/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension that needs runtime configuration (for example x/rent) stores a
single protobuf message under the "_c:<package name>" key. The value is loaded
from the "gconf" section of the genesis file and read by handlers with Load.
*/
package gconf
