// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/board). This root package
// holds the sentinel errors and error types the whole core reports failures
// through.
package domain
