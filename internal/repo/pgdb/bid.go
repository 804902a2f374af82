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
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, err
	}

	freelancerId, err := uuid.Parse(input.FreelancerId)
	if err != nil {
		return uuid.Nil, err
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("gig_id", "freelancer_id", "message", "price", "status").
		Values(gigId, freelancerId, input.Message, input.Price, common.BidPending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	if err := r.Database.QueryRow(createBidSql, args...).Scan(&bidId); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}

		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, bid.freelancer_id, bid.message, bid.price, bid.status, bid.created_at, users.name, users.email").
		From("bid").
		InnerJoin("users on users.id = bid.freelancer_id").
		Where("bid.id = ?", uuidForm).
		ToSql()

	var bid entity.Bid
	var createdAt time.Time
	row := r.Database.QueryRow(getBidSql, args...)
	err = row.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.Message, &bid.Price,
		&bid.Status, &createdAt, &bid.FreelancerName, &bid.FreelancerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

func (r *BidRepo) GetGigBids(ctx context.Context, gigId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(gigId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, bid.freelancer_id, bid.message, bid.price, bid.status, bid.created_at, users.name, users.email").
		From("bid").
		InnerJoin("users on users.id = bid.freelancer_id").
		Where("bid.gig_id = ?", uuidForm).
		OrderBy("bid.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.Query(sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		var createdAt time.Time
		if err := rows.Scan(&bid.Id, &bid.GigId, &bid.FreelancerId, &bid.Message, &bid.Price,
			&bid.Status, &createdAt, &bid.FreelancerName, &bid.FreelancerEmail); err != nil {
			return bids, err
		}
		bid.CreatedAt = createdAt.Format(time.RFC3339)
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) HasBidFromFreelancer(ctx context.Context, gigId string, freelancerId string) (bool, error) {
	gigUuid, err := uuid.Parse(gigId)
	if err != nil {
		return false, err
	}

	freelancerUuid, err := uuid.Parse(freelancerId)
	if err != nil {
		return false, err
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id").
		From("bid").
		Where("gig_id = ?", gigUuid).
		Where("freelancer_id = ?", freelancerUuid).
		ToSql()

	var id uuid.UUID
	err = r.Database.QueryRow(sqlReq, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *BidRepo) UpdateBidStatusById(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		ToSql()

	_, err = r.Database.Exec(updateStatusSql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *BidRepo) RejectOtherPendingBids(ctx context.Context, gigId string, hiredBidId string) (int64, error) {
	gigUuid, err := uuid.Parse(gigId)
	if err != nil {
		return 0, err
	}

	hiredUuid, err := uuid.Parse(hiredBidId)
	if err != nil {
		return 0, err
	}

	rejectSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidRejected).
		Where("gig_id = ?", gigUuid).
		Where("id <> ?", hiredUuid).
		Where("status = ?", common.BidPending).
		ToSql()

	result, err := r.Database.Exec(rejectSql, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
