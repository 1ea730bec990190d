package converter

import (
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

func ReviewToResponse(review *entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:         review.ID,
		Name:       review.Name,
		Email:      review.Email,
		Course:     review.Course,
		Rating:     review.Rating,
		Comment:    review.Comment,
		Status:     review.Status(),
		CanApprove: review.CanApprove(),
		CreatedAt:  review.CreatedAt,
	}
}

func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ReviewToResponse(&reviews[i])
	}
	return responses
}
