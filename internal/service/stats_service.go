package service

import (
	"context"

	"github.com/learnnest/learnnest-backend/internal/model"
)

// Stats is the admin dashboard summary.
type Stats struct {
	Users           int `json:"users"`
	Classes         int `json:"classes"`
	ApprovedClasses int `json:"approved_classes"`
	Enrollments     int `json:"enrollments"`
}

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

type classCounter interface {
	Count(ctx context.Context, status *model.ClassStatus) (int, error)
}

type enrollmentCounter interface {
	Count(ctx context.Context) (int, error)
}

// StatsService aggregates platform counts for the admin dashboard.
type StatsService struct {
	users       userCounter
	classes     classCounter
	enrollments enrollmentCounter
}

// NewStatsService creates a new StatsService.
func NewStatsService(users userCounter, classes classCounter, enrollments enrollmentCounter) *StatsService {
	return &StatsService{users: users, classes: classes, enrollments: enrollments}
}

// Collect gathers all dashboard counts.
func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := s.classes.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	approved := model.ClassStatusApproved
	approvedCount, err := s.classes.Count(ctx, &approved)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Users:           users,
		Classes:         classes,
		ApprovedClasses: approvedCount,
		Enrollments:     enrollments,
	}, nil
}
