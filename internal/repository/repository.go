// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Repositories return raw driver errors (pgx.ErrNoRows,
// pgconn.PgError); the service layer and the sqlerr funnel decide how
// those surface to clients.
package repository
