/*
Package swaptest provides mocks and helpers for testing handlers,
decorators and authentication without a running application.
*/
package swaptest
