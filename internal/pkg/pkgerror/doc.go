// Package pkgerror defines the structured error used between the records
// module and the HTTP edge.
//
// An Error carries the user-facing message, a high-level Type and a stable
// Code. Handlers return it and the router turns the Code into a status.
package pkgerror
