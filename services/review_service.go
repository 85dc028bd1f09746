package services

import (
	"context"
	"strings"
	"time"

	"script9/access"
	"script9/constants"
	"script9/dto"
	apperrors "script9/errors"
	"script9/models"
	"script9/services/cache"
	"script9/services/logger"
	"script9/types"
	"script9/utils"
	"script9/validator"
)

type ReviewServiceOptions struct {
	Reviews  ReviewRepository
	Bookings BookingRepository
	Cache    cache.Cache
	Logger   logger.Logger
	Now      func() time.Time
}

type ReviewService struct {
	reviews  ReviewRepository
	bookings BookingRepository
	cache    cache.Cache
	logger   logger.Logger
	now      func() time.Time
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	s := &ReviewService{
		reviews:  opts.Reviews,
		bookings: opts.Bookings,
		cache:    opts.Cache,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CreateReview records the guest's single review of a completed booking.
func (s *ReviewService) CreateReview(ctx context.Context, guestID string, req dto.CreateReviewRequest) (*models.Review, error) {
	booking, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, apperrors.Forbidden("only the booking's guest can review it")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidOperation, "only completed bookings can be reviewed")
	}
	if err := validator.ValidateRating("rating", req.Rating); err != nil {
		return nil, err
	}
	if err := validator.ValidateCategoryRatings(req.CategoryRatings); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.BadRequest(apperrors.ErrCodeDuplicate, "booking already has a review")
	}

	review := &models.Review{
		BookingID:       booking.ID,
		PropertyID:      booking.PropertyID,
		GuestID:         booking.GuestID,
		HostID:          booking.HostID,
		Rating:          req.Rating,
		CategoryRatings: req.CategoryRatings,
		ReviewText:      strings.TrimSpace(req.ReviewText),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	s.invalidate(ctx, review.PropertyID)
	return review, nil
}

// UpdateReview lets the author patch a review within ReviewEditWindow of posting it.
func (s *ReviewService) UpdateReview(ctx context.Context, id, userID string, patch dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(access.Actor{UserID: userID}, access.ReviewEdit, access.Resource{AuthorID: review.GuestID}); err != nil {
		return nil, err
	}
	if !review.EditableAt(s.now()) {
		return nil, apperrors.BadRequest(apperrors.ErrCodeEditWindowClosed, "reviews can only be edited within 24 hours")
	}

	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	mergeCategoryRatings(&review.CategoryRatings, patch.CategoryRatings)
	if patch.ReviewText != nil {
		review.ReviewText = strings.TrimSpace(*patch.ReviewText)
	}

	if err := validator.ValidateRating("rating", review.Rating); err != nil {
		return nil, err
	}
	if err := validator.ValidateCategoryRatings(review.CategoryRatings); err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	s.invalidate(ctx, review.PropertyID)
	return review, nil
}

func mergeCategoryRatings(dst *models.CategoryRatings, patch models.CategoryRatings) {
	if patch.Cleanliness != nil {
		dst.Cleanliness = patch.Cleanliness
	}
	if patch.Communication != nil {
		dst.Communication = patch.Communication
	}
	if patch.Accuracy != nil {
		dst.Accuracy = patch.Accuracy
	}
	if patch.Location != nil {
		dst.Location = patch.Location
	}
	if patch.Value != nil {
		dst.Value = patch.Value
	}
}

// RespondToReview sets the host's one time public answer.
func (s *ReviewService) RespondToReview(ctx context.Context, id, hostID, text string) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(access.Actor{UserID: hostID}, access.ReviewRespond, access.Resource{HostID: review.HostID}); err != nil {
		return nil, err
	}
	body := strings.TrimSpace(text)
	if body == "" {
		return nil, apperrors.BadRequest(apperrors.ErrCodeRequiredField, "response cannot be empty")
	}
	if review.HostResponse != nil {
		return nil, apperrors.BadRequest(apperrors.ErrCodeDuplicate, "review already has a response")
	}

	now := s.now()
	review.HostResponse = &body
	review.HostResponseDate = &now
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// CalculateAverageRating aggregates a property's reviews. Results are cached for RatingCacheTTL.
func (s *ReviewService) CalculateAverageRating(ctx context.Context, propertyID string) (types.RatingSummary, error) {
	key := constants.RatingCacheKey(propertyID)
	var cached types.RatingSummary
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("rating cache get %s: %v", key, err)
	} else if found {
		return cached, nil
	}

	reviews, err := s.reviews.ListRatings(ctx, propertyID)
	if err != nil {
		return types.RatingSummary{}, err
	}
	summary := summarizeRatings(reviews)

	if err := s.cache.Set(ctx, key, summary, constants.RatingCacheTTL); err != nil {
		s.logger.Warn("rating cache set %s: %v", key, err)
	}
	return summary, nil
}

// summarizeRatings averages the overall rating over every review and each
// category only over the reviews that rated it.
func summarizeRatings(reviews []models.Review) types.RatingSummary {
	summary := types.RatingSummary{
		TotalReviews: len(reviews),
		Categories:   make(map[string]float64),
	}
	sums := make(map[string]int)
	counts := make(map[string]int)
	total := 0
	for _, r := range reviews {
		total += r.Rating
		for _, c := range r.CategoryRatings.Named() {
			if c.Value == nil {
				continue
			}
			sums[c.Name] += *c.Value
			counts[c.Name]++
		}
	}

	if len(reviews) > 0 {
		summary.AverageRating = utils.RoundCents(float64(total) / float64(len(reviews)))
	}
	for _, c := range (models.CategoryRatings{}).Named() {
		if counts[c.Name] == 0 {
			summary.Categories[c.Name] = 0
			continue
		}
		summary.Categories[c.Name] = utils.RoundCents(float64(sums[c.Name]) / float64(counts[c.Name]))
	}
	return summary
}

func (s *ReviewService) ListPropertyReviews(ctx context.Context, propertyID string, page types.Page) ([]models.Review, int64, error) {
	return s.reviews.ListByProperty(ctx, propertyID, page.Normalize())
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.ReviewDelete, access.Resource{}); err != nil {
		return err
	}
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, review.PropertyID)
	s.logger.WithFields(logger.Fields{"reviewId": id, "actorId": actor.UserID}).Info("review deleted")
	return nil
}

func (s *ReviewService) invalidate(ctx context.Context, propertyID string) {
	if err := s.cache.Delete(ctx, constants.RatingCacheKey(propertyID)); err != nil {
		s.logger.Warn("rating cache invalidate %s: %v", propertyID, err)
	}
}
