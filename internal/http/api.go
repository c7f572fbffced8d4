package http

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/service"
	"twitter-clone/internal/storage"
)

const (
	maxAvatarSize    = 5 << 20
	avatarURLExpires = 15 * time.Minute
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	tweets   service.TweetService
	follows  service.FollowService
	feed     service.FeedService
	profiles service.ProfileService

	storage   storage.Service
	bucket    string
	keyPrefix string

	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(
	users service.UserService,
	tweets service.TweetService,
	follows service.FollowService,
	feed service.FeedService,
	profiles service.ProfileService,
	store storage.Service,
	bucket, keyPrefix string,
	jwtSecret string,
	tokenTTL time.Duration,
) *Handler {
	return &Handler{
		users:     users,
		tweets:    tweets,
		follows:   follows,
		feed:      feed,
		profiles:  profiles,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
		}

		users := api.Group("/users")
		{
			users.GET("", h.listUsers)
			users.GET("/search", h.searchUsers)
			users.GET("/me", h.authRequired, h.me)
			users.POST("/me/avatar", h.authRequired, h.uploadAvatar)
			users.POST("/follow/:id", h.authRequired, h.follow)
			users.DELETE("/follow/:id", h.authRequired, h.unfollow)
		}

		tweets := api.Group("/tweets")
		{
			tweets.GET("", h.authOptional, h.listTweets)
			tweets.POST("", h.authRequired, h.createTweet)
			tweets.GET("/:id", h.authOptional, h.getTweet)
			tweets.DELETE("/:id", h.authRequired, h.deleteTweet)
			tweets.POST("/:id/like", h.authRequired, h.likeTweet)
			tweets.DELETE("/:id/like", h.authRequired, h.unlikeTweet)
		}

		api.GET("/timeline", h.authRequired, h.timeline)

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", h.authRequired, h.getProfile)
			profiles.GET("/:username/avatar", h.getAvatar)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, expiresAt, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"expires_at":   expiresAt.Format(time.RFC3339),
		"user":         userToResponse(*user),
	})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usersToResponse(users))
}

func (h *Handler) searchUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	users, err := h.users.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usersToResponse(users))
}

func (h *Handler) follow(c *gin.Context) {
	followeeID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.follows.Follow(c.Request.Context(), currentUserID(c), followeeID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"following": followeeID})
}

func (h *Handler) unfollow(c *gin.Context) {
	followeeID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.follows.Unfollow(c.Request.Context(), currentUserID(c), followeeID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unfollowed": followeeID})
}

func (h *Handler) createTweet(c *gin.Context) {
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tweet, err := h.tweets.CreateTweet(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         tweet.ID,
		"content":    tweet.Content,
		"created_at": tweet.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) listTweets(c *gin.Context) {
	tweets, err := h.tweets.ListTweets(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tweetsToResponse(tweets))
}

func (h *Handler) getTweet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	tweet, err := h.tweets.GetTweet(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tweetToResponse(*tweet))
}

func (h *Handler) deleteTweet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.tweets.DeleteTweet(c.Request.Context(), currentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) likeTweet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.tweets.Like(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": id})
}

func (h *Handler) unlikeTweet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.tweets.Unlike(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unliked": id})
}

func (h *Handler) timeline(c *gin.Context) {
	tweets, err := h.feed.Timeline(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tweetsToResponse(tweets))
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.profiles.Profile(c.Request.Context(), c.Param("username"), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*profile))
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if file.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open avatar file"})
		return
	}
	defer src.Close()

	userID := currentUserID(c)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	key := path.Join(
		strings.Trim(h.keyPrefix, "/"),
		fmt.Sprintf("avatars/user-%d/%s%s", userID, uuid.NewString(), path.Ext(file.Filename)),
	)

	location, err := h.storage.PutObject(c.Request.Context(), h.bucket, key, src, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetAvatarURL(c.Request.Context(), userID, location); err != nil {
		h.writeError(c, err)
		return
	}

	h.deleteReplacedAvatar(c, user.AvatarURL)

	c.JSON(http.StatusCreated, gin.H{"avatar_url": location})
}

// deleteReplacedAvatar removes the previous avatar object once the profile
// points at the new one. Best effort: an orphaned object is logged, not
// surfaced to the caller.
func (h *Handler) deleteReplacedAvatar(c *gin.Context, oldLocation string) {
	if oldLocation == "" {
		return
	}
	key, err := extractS3Key(oldLocation, h.bucket)
	if err != nil {
		logrus.WithError(err).Warnf("replaced avatar location %q not deletable", oldLocation)
		return
	}
	if err := h.storage.DeleteObject(c.Request.Context(), h.bucket, key); err != nil {
		logrus.WithError(err).Warnf("delete replaced avatar %s", key)
	}
}

func (h *Handler) getAvatar(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	profile, err := h.profiles.Profile(c.Request.Context(), c.Param("username"), 0)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if profile.AvatarURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user has no avatar"})
		return
	}

	key, err := extractS3Key(profile.AvatarURL, h.bucket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, avatarURLExpires)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTweetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotTweetAuthor):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrUserAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrContentTooLong):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func extractS3Key(location, bucket string) (string, error) {
	if !strings.HasPrefix(location, "s3://") {
		return "", fmt.Errorf("invalid s3 location")
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid s3 location")
	}
	if bucket != "" && parts[0] != bucket {
		return "", fmt.Errorf("s3 bucket mismatch")
	}
	return strings.TrimPrefix(parts[1], "/"), nil
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

type TweetAuthor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type TweetResponse struct {
	ID             int64       `json:"id"`
	Content        string      `json:"content"`
	Author         TweetAuthor `json:"author"`
	LikeCount      int64       `json:"like_count"`
	ViewerHasLiked bool        `json:"viewer_has_liked"`
	CreatedAt      string      `json:"created_at"`
}

type ProfileResponse struct {
	ID                int64           `json:"id"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	AvatarURL         string          `json:"avatar_url,omitempty"`
	CreatedAt         string          `json:"created_at"`
	Tweets            []TweetResponse `json:"tweets"`
	FollowerCount     int64           `json:"follower_count"`
	FollowingCount    int64           `json:"following_count"`
	ViewerIsFollowing bool            `json:"viewer_is_following"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func usersToResponse(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	return resp
}

func tweetToResponse(tweet domain.TweetView) TweetResponse {
	return TweetResponse{
		ID:      tweet.ID,
		Content: tweet.Content,
		Author: TweetAuthor{
			ID:       tweet.AuthorID,
			Username: tweet.AuthorUsername,
		},
		LikeCount:      tweet.LikeCount,
		ViewerHasLiked: tweet.ViewerHasLiked,
		CreatedAt:      tweet.CreatedAt.Format(time.RFC3339),
	}
}

func tweetsToResponse(tweets []domain.TweetView) []TweetResponse {
	resp := make([]TweetResponse, len(tweets))
	for i := range tweets {
		resp[i] = tweetToResponse(tweets[i])
	}
	return resp
}

func profileToResponse(profile domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                profile.ID,
		Username:          profile.Username,
		Email:             profile.Email,
		AvatarURL:         profile.AvatarURL,
		CreatedAt:         profile.CreatedAt.Format(time.RFC3339),
		Tweets:            tweetsToResponse(profile.Tweets),
		FollowerCount:     profile.FollowerCount,
		FollowingCount:    profile.FollowingCount,
		ViewerIsFollowing: profile.ViewerIsFollowing,
	}
}
