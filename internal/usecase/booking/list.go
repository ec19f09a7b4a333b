package booking

import (
	"context"

	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type ListReservations struct {
	repo domain.Repository
}

func NewListReservations(repo domain.Repository) *ListReservations {
	return &ListReservations{repo: repo}
}

// Execute lists the caller's own bookings, scoped by role: teachers see
// the lessons they give, students the lessons they booked.
func (uc *ListReservations) Execute(
	ctx context.Context,
	userID uint,
	role string,
) ([]models.Reservation, error) {
	return uc.repo.ListReservationsForUser(ctx, userID, role)
}
