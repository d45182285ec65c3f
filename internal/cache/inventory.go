package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	followerCountKeyPrefix  = "user:%d:followers:count"
	followingCountKeyPrefix = "user:%d:following:count"
	postCountKeyPrefix      = "user:%d:posts:count"
)

const (
	// CountTTL bounds staleness of the profile counters between
	// invalidations.
	CountTTL = 5 * time.Minute
)

// FollowerCountKey is the cache key for a user's follower count.
func FollowerCountKey(userID uint) string {
	return fmt.Sprintf(followerCountKeyPrefix, userID)
}

// FollowingCountKey is the cache key for a user's following count.
func FollowingCountKey(userID uint) string {
	return fmt.Sprintf(followingCountKeyPrefix, userID)
}

// PostCountKey is the cache key for a user's post count.
func PostCountKey(userID uint) string {
	return fmt.Sprintf(postCountKeyPrefix, userID)
}

// Invalidate drops a single cache key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateFollowEdge drops the counters affected by creating or deleting
// a follow edge from authorID to followedID.
func InvalidateFollowEdge(ctx context.Context, authorID, followedID uint) {
	Invalidate(ctx, FollowingCountKey(authorID))
	Invalidate(ctx, FollowerCountKey(followedID))
}

// InvalidatePostCount drops the post counter for an author.
func InvalidatePostCount(ctx context.Context, authorID uint) {
	Invalidate(ctx, PostCountKey(authorID))
}
