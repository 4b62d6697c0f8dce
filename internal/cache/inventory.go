package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	PostsPageKeyPrefix = "posts:page:%d:%d"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	PostsPageTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// PostsPageKey caches a page of the public feed by limit and offset.
func PostsPageKey(limit, offset int) string {
	return fmt.Sprintf(PostsPageKeyPrefix, limit, offset)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	InvalidatePostsFeed(ctx)
}

// InvalidatePostsFeed drops the cached first page of the public feed.
// Deeper pages are short-lived enough to age out on their own.
func InvalidatePostsFeed(ctx context.Context) {
	Invalidate(ctx, PostsPageKey(20, 0))
}
