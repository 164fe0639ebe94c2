/*
Package x contains the extensions of the swap application.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct
the application. This package itself only holds the authentication
abstraction that all extensions share, so that handlers never
hard-code a particular signature scheme.
*/
package x
