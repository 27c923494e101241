/*
Package utils contains the decorators wrapped around every handler of the
application: transaction isolation, panic recovery, logging and metrics.
*/
package utils
