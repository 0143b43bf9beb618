// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// Services depend on small store interfaces rather than concrete
// repositories so the rules (date defaulting, log filtering, the
// uniqueness contract) can be exercised without a database.
package service
