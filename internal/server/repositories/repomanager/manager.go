package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mtmt/internal/dbx"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/mentees"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/mentors"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/users"
)

// RepositoryManager vends SQL repositories bound to a DBTX, so the same
// service code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Mentors(db dbx.DBTX) mentors.Repository
	Mentees(db dbx.DBTX) mentees.Repository
}
