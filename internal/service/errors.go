package service

import "errors"

var (
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTweetNotFound indicates the referenced tweet does not exist.
	ErrTweetNotFound = errors.New("tweet not found")
	// ErrNotTweetAuthor is returned when someone other than the author tries to delete a tweet.
	ErrNotTweetAuthor = errors.New("only the author can delete a tweet")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following this user")
	// ErrNotFollowing is returned when unfollowing without an existing edge.
	ErrNotFollowing = errors.New("not following this user")
	// ErrEmptyContent is returned for a tweet with no content.
	ErrEmptyContent = errors.New("tweet content is required")
	// ErrContentTooLong is returned when a tweet exceeds the length bound.
	ErrContentTooLong = errors.New("tweet content is too long")
	// ErrUserAlreadyExists is returned when registering with a taken username or email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
