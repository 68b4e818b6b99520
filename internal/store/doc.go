// Package store defines the persistence interfaces the service layer
// depends on, along with the sentinel errors and transaction helpers shared
// by all implementations. Concrete backends live under platform/.
package store
