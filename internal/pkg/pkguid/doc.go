// Package pkguid provides helpers for generating unique identifiers.
//
// Correlation IDs use UUIDv7 strings; replacement events use Snowflake
// numbers so they sort by publication time.
package pkguid
