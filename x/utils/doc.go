/*
Package utils contains decorators shared by every application built on the
swap framework: panic recovery, logging, metrics, action tags and savepoints.
*/
package utils
