package pgsql

import (
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Claim:    newPgxClaimRepository(dbPool),
		Lecturer: newPgxLecturerRepository(dbPool),
		User:     newPgxUserRepository(dbPool),
	}
}
