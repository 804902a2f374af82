package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"
	"gig-marketplace-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type GigRepo struct {
	*postgres.Postgres
}

func NewGigRepo(pgdb *postgres.Postgres) *GigRepo {
	return &GigRepo{pgdb}
}

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	ownerId, err := uuid.Parse(input.OwnerId)
	if err != nil {
		return uuid.Nil, err
	}

	createGigSql, args, _ := r.SqlBuilder.
		Insert("gig").
		Columns("title", "description", "budget", "owner_id", "status").
		Values(input.Title, input.Description, input.Budget, ownerId, common.GigOpen).
		Suffix("RETURNING id").
		ToSql()

	var gigId uuid.UUID
	if err := r.Database.QueryRow(createGigSql, args...).Scan(&gigId); err != nil {
		return uuid.Nil, err
	}

	return gigId, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getGigSql, args, _ := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.owner_id, gig.status, gig.created_at, users.name, users.email").
		From("gig").
		InnerJoin("users on users.id = gig.owner_id").
		Where("gig.id = ?", uuidForm).
		ToSql()

	var gig entity.Gig
	var createdAt time.Time
	row := r.Database.QueryRow(getGigSql, args...)
	err = row.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.OwnerId,
		&gig.Status, &createdAt, &gig.OwnerName, &gig.OwnerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	gig.CreatedAt = createdAt.Format(time.RFC3339)

	return &gig, nil
}

func (r *GigRepo) GetOpenGigs(ctx context.Context, titleSearch string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.owner_id, gig.status, gig.created_at, users.name, users.email").
		From("gig").
		InnerJoin("users on users.id = gig.owner_id").
		Where("gig.status = ?", common.GigOpen)

	if titleSearch != "" {
		builder = builder.Where("gig.title ILIKE ?", "%"+titleSearch+"%")
	}

	sqlReq, args, _ := builder.
		OrderBy("gig.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.Query(sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gigs := make([]entity.Gig, 0)
	for rows.Next() {
		var gig entity.Gig
		var createdAt time.Time
		if err := rows.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.OwnerId,
			&gig.Status, &createdAt, &gig.OwnerName, &gig.OwnerEmail); err != nil {
			return gigs, err
		}
		gig.CreatedAt = createdAt.Format(time.RFC3339)
		gigs = append(gigs, gig)
	}
	if err = rows.Err(); err != nil {
		return gigs, err
	}

	return gigs, nil
}

// AssignGigIfOpen is the single load-bearing concurrency guard of the
// hiring workflow: a compare-and-set on the status column. No in-process
// lock links any earlier status read to this write.
func (r *GigRepo) AssignGigIfOpen(ctx context.Context, id string) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}

	assignSql, args, _ := r.SqlBuilder.
		Update("gig").
		Set("status", common.GigAssigned).
		Where("id = ?", uuidForm).
		Where("status = ?", common.GigOpen).
		ToSql()

	result, err := r.Database.Exec(assignSql, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}
