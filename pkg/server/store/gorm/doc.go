// Package gorm implements the tripdesk stores on PostgreSQL through GORM.
//
// Each store wraps a *gorm.DB and maps driver errors onto the sentinels in
// pkg/server/store. Writes that touch more than one table (order settlement,
// guarded deletes) run inside db.Transaction.
package gorm
