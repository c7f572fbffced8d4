package domain

import "time"

// Profile is a user's public-facing aggregate as seen by a viewer.
type Profile struct {
	ID                int64
	Username          string
	Email             string
	AvatarURL         string
	CreatedAt         time.Time
	Tweets            []TweetView
	FollowerCount     int64
	FollowingCount    int64
	ViewerIsFollowing bool
}
