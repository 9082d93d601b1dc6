// Package pkgroutine runs background work with a concurrency cap.
//
// Errors returned by tasks are collected for Wait, and panics are logged
// instead of taking the process down.
package pkgroutine
