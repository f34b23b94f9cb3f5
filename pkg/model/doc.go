// Package model contains the database models for ticketd.
package model
