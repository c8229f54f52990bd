// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns. Repositories convert with ToDomain and FromDomain.
package models
