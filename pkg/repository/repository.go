package repository

import (
	"context"

	"github.com/connectpro/connectpro/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// DirectoryFilters is the conjunction of optional directory query filters.
// Zero-valued fields impose no constraint.
type DirectoryFilters struct {
	Search       string
	BusinessType string
	Location     string
	Skills       []string
	Tags         []string
}

// PostFilters narrows the main posts feed. Zero-valued fields impose no
// constraint.
type PostFilters struct {
	UserID   int64
	PostType string
	Tags     []string
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetUserVerified(ctx context.Context, id int64, verified bool) error
	ListBusinesses(ctx context.Context, f DirectoryFilters) ([]models.User, error)
	ListContractors(ctx context.Context, f DirectoryFilters) ([]models.User, error)
}

type OtpRepo interface {
	CreateOtp(ctx context.Context, o *models.OtpVerification) (int64, error)
	GetValidOtp(ctx context.Context, email, code string) (*models.OtpVerification, error)
	MarkOtpUsed(ctx context.Context, id int64) error
}

type PostRepo interface {
	CreatePost(ctx context.Context, p *models.Post) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, f PostFilters) ([]models.Post, error)
	ListPostsForYou(ctx context.Context, excludeUserID int64) ([]models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type LikeRepo interface {
	// ToggleLike flips the like state of (userID, postID) and adjusts the
	// post's like counter in the same transaction. It returns the resulting
	// state and counter value.
	ToggleLike(ctx context.Context, userID, postID int64) (liked bool, likes int64, err error)
	HasLiked(ctx context.Context, userID, postID int64) (bool, error)
}

type CommentRepo interface {
	// CreateComment inserts the comment and increments the post's comment
	// counter in the same transaction.
	CreateComment(ctx context.Context, c *models.Comment) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	// DeleteComment removes the comment and decrements the post's comment
	// counter in the same transaction.
	DeleteComment(ctx context.Context, id int64) error
}

type JobOrderRepo interface {
	CreateJobOrder(ctx context.Context, j *models.JobOrder) (int64, error)
	GetJobOrderByID(ctx context.Context, id int64) (*models.JobOrder, error)
	ListJobOrdersByOwner(ctx context.Context, ownerID int64, status string) ([]models.JobOrder, error)
	UpdateJobOrder(ctx context.Context, j *models.JobOrder) error
	DeleteJobOrder(ctx context.Context, id int64) error
}

type ContactRepo interface {
	CreateContactSubmission(ctx context.Context, c *models.ContactSubmission) (int64, error)
	CreateNewsletterSubscription(ctx context.Context, email string) (int64, error)
	GetNewsletterSubscriptionByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error)
}
