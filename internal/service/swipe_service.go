package service

import (
	"context"
	"errors"
	"time"

	"collegedate/internal/domain"
	"collegedate/internal/models"
	"collegedate/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Swipe gate decisions.
const (
	DecisionFree = "FREE"
	DecisionPaid = "PAID"
)

var (
	ErrInvalidDirection = errors.New("direction must be left or right")
	ErrSelfSwipe        = errors.New("cannot swipe on yourself")
	ErrTargetNotFound   = errors.New("swiped profile not found")
	ErrTargetBlocked    = errors.New("swiped profile is blocked")
	ErrSwiperBlocked    = errors.New("swiper is blocked")
	ErrAlreadyLiked     = errors.New("target already right-swiped")
)

// SwipeOutcome is the gate's answer. FREE carries the recorded swipe (and the
// conversation for a right-swipe); PAID carries the minted payment intent and
// no recorded state at all.
type SwipeOutcome struct {
	Decision     string
	Swipe        *models.Swipe
	Conversation *models.Conversation
	IntentRef    string
	Amount       int64
}

// SwipeService gates likes behind the quota-or-payment decision.
type SwipeService struct {
	profileRepo *repository.ProfileRepository
	swipeRepo   *repository.SwipeRepository
	matchSvc    *MatchService
	log         *logrus.Logger
}

func NewSwipeService(
	profileRepo *repository.ProfileRepository,
	swipeRepo *repository.SwipeRepository,
	matchSvc *MatchService,
	log *logrus.Logger,
) *SwipeService {
	return &SwipeService{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		matchSvc:    matchSvc,
		log:         log,
	}
}

// Swipe evaluates a swipe by swiperID on swipedID.
//
// Left swipes and right swipes by quota-exempt profiles are always free. A
// quota-bound right-swipe consumes one quota unit through a conditional
// decrement, so concurrent swipes racing over the last unit cannot both
// succeed. With no quota left the outcome is PAID: a payment intent reference
// is minted and nothing is written until the charge is confirmed.
func (s *SwipeService) Swipe(ctx context.Context, swiperID, swipedID uint, direction string) (*SwipeOutcome, error) {
	if direction != domain.DirectionLeft && direction != domain.DirectionRight {
		return nil, ErrInvalidDirection
	}
	if swiperID == swipedID {
		return nil, ErrSelfSwipe
	}
	swiped, err := s.profileRepo.GetByID(swipedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	if swiped.IsBlocked {
		return nil, ErrTargetBlocked
	}
	swiper, err := s.profileRepo.GetByID(swiperID)
	if err != nil {
		return nil, err
	}
	if swiper.IsBlocked {
		return nil, ErrSwiperBlocked
	}

	if direction == domain.DirectionLeft {
		sw := &models.Swipe{SwiperID: swiperID, SwipedID: swipedID, Direction: domain.DirectionLeft}
		if err := s.swipeRepo.Create(sw); err != nil {
			return nil, err
		}
		return &SwipeOutcome{Decision: DecisionFree, Swipe: sw}, nil
	}

	// Repeat likes would mint duplicate charges; refuse them up front.
	liked, err := s.swipeRepo.HasRightSwipe(swiperID, swipedID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, ErrAlreadyLiked
	}

	if !swiper.QuotaBound() {
		return s.recordFreeLike(ctx, swiperID, swipedID)
	}

	consumed, err := s.profileRepo.ConsumeFreeSwipe(swiperID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		ref := domain.MintIntentRef(swiperID, swipedID, time.Now())
		return &SwipeOutcome{Decision: DecisionPaid, IntentRef: ref, Amount: domain.SwipePrice}, nil
	}
	out, err := s.recordFreeLike(ctx, swiperID, swipedID)
	if err != nil {
		// The quota unit was taken but nothing was recorded; hand it back.
		if restoreErr := s.profileRepo.RestoreFreeSwipe(swiperID); restoreErr != nil {
			s.log.WithError(restoreErr).WithField("swiper_id", swiperID).Error("quota restore failed")
		}
		return nil, err
	}
	return out, nil
}

func (s *SwipeService) recordFreeLike(ctx context.Context, swiperID, swipedID uint) (*SwipeOutcome, error) {
	sw := &models.Swipe{SwiperID: swiperID, SwipedID: swipedID, Direction: domain.DirectionRight}
	if err := s.swipeRepo.Create(sw); err != nil {
		return nil, err
	}
	conv, err := s.matchSvc.EnsureConversation(ctx, swiperID, swipedID)
	if err != nil {
		return nil, err
	}
	return &SwipeOutcome{Decision: DecisionFree, Swipe: sw, Conversation: conv}, nil
}
