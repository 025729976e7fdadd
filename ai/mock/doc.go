// Package mock provides deterministic in-memory implementations of the
// ai interfaces for testing without network services.
package mock
