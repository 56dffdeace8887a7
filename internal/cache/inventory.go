package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	ProfileKeyPrefix  = "profile:%d"
	WardrobeKeyPrefix = "wardrobe:%d:%s"
)

const (
	UserTTL     = 5 * time.Minute
	ProfileTTL  = 5 * time.Minute
	WardrobeTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

// WardrobeKey keys a user's item listing per ordering variant.
func WardrobeKey(userID uint, order string) string {
	return fmt.Sprintf(WardrobeKeyPrefix, userID, order)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

// InvalidateWardrobe drops every cached ordering of the user's listing.
func InvalidateWardrobe(ctx context.Context, userID uint, orders ...string) {
	keys := make([]string, 0, len(orders))
	for _, o := range orders {
		keys = append(keys, WardrobeKey(userID, o))
	}
	Invalidate(ctx, keys...)
}
