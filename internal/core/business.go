package core

import (
	"context"
	"fmt"

	"github.com/bookhive/domains/internal/model"
)

type BusinessService struct {
	db DB
}

func NewBusinessService(db DB) *BusinessService {
	return &BusinessService{db: db}
}

func (s *BusinessService) Create(ctx context.Context, b *model.Business) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO businesses (id, name, subdomain, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.Subdomain, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

func (s *BusinessService) GetByID(ctx context.Context, id string) (*model.Business, error) {
	var b model.Business
	err := s.db.QueryRow(ctx,
		`SELECT id, name, subdomain, created_at, updated_at
		 FROM businesses WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Subdomain, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get business %s: %w", id, err)
	}
	return &b, nil
}

func (s *BusinessService) List(ctx context.Context) ([]model.Business, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, subdomain, created_at, updated_at
		 FROM businesses ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []model.Business
	for rows.Next() {
		var b model.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Subdomain, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

func (s *BusinessService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM businesses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete business %s: %w", id, err)
	}
	return nil
}
