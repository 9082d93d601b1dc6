// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface so it stays easy to test and
// does not care where values come from. The Viper implementation layers them
// as command-line flags, then environment, then config file, then defaults.
package pkgconfig
