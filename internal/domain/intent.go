package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Payment intent references look like CD_{swiperID}_{swipedID}_{epochMillis}.
// Both confirmation channels parse them to recover the swipe pair; the epoch
// part only keeps the reference unique and is never interpreted.
const IntentPrefix = "CD"

var ErrInvalidIntentRef = errors.New("invalid payment intent reference")

type IntentRef struct {
	SwiperID uint
	SwipedID uint
}

func MintIntentRef(swiperID, swipedID uint, now time.Time) string {
	return fmt.Sprintf("%s_%d_%d_%d", IntentPrefix, swiperID, swipedID, now.UnixMilli())
}

func ParseIntentRef(ref string) (IntentRef, error) {
	parts := strings.Split(ref, "_")
	if len(parts) < 4 || parts[0] != IntentPrefix {
		return IntentRef{}, ErrInvalidIntentRef
	}
	swiper, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return IntentRef{}, ErrInvalidIntentRef
	}
	swiped, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return IntentRef{}, ErrInvalidIntentRef
	}
	if swiper == 0 || swiped == 0 || swiper == swiped {
		return IntentRef{}, ErrInvalidIntentRef
	}
	return IntentRef{SwiperID: uint(swiper), SwipedID: uint(swiped)}, nil
}
