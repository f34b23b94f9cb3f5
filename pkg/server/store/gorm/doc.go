// Package gorm implements the store interfaces on top of GORM and Postgres.
package gorm
