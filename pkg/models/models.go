package models

// User types.
const (
	UserTypeBusiness   = "business"
	UserTypeContractor = "contractor"
)

// Post types and media types.
const (
	PostTypeText  = "text"
	PostTypeMedia = "media"

	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Job order statuses.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// User is a marketplace account. Business- and contractor-only fields live on
// the same row, discriminated by UserType. The password hash is never
// serialized to JSON.
type User struct {
	ID             int64    `json:"id" db:"id"`
	Email          string   `json:"email" db:"email"`
	PasswordHash   string   `json:"-" db:"password"`
	FirstName      string   `json:"firstName" db:"first_name"`
	LastName       string   `json:"lastName" db:"last_name"`
	UserType       string   `json:"userType" db:"user_type"`
	CompanyName    *string  `json:"companyName,omitempty" db:"company_name"`
	BusinessType   *string  `json:"businessType,omitempty" db:"business_type"`
	PhoneNumber    *string  `json:"phoneNumber,omitempty" db:"phone_number"`
	Location       *string  `json:"location,omitempty" db:"location"`
	Skills         []string `json:"skills,omitempty" db:"skills"`
	Certifications []string `json:"certifications,omitempty" db:"certifications"`
	Tags           []string `json:"tags,omitempty" db:"tags"`
	Bio            *string  `json:"bio,omitempty" db:"bio"`
	IsVerified     bool     `json:"isVerified" db:"is_verified"`
	CreatedAt      int64    `json:"createdAt" db:"created_at"`
}

// PostAuthor carries the public author fields joined onto feed rows.
type PostAuthor struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	UserType     string  `json:"userType"`
	CompanyName  *string `json:"companyName,omitempty"`
	BusinessType *string `json:"businessType,omitempty"`
}

type Post struct {
	ID            int64       `json:"id" db:"id"`
	UserID        int64       `json:"userId" db:"user_id"`
	Content       *string     `json:"content,omitempty" db:"content"`
	PostType      string      `json:"postType" db:"post_type"`
	MediaURLs     []string    `json:"mediaUrls,omitempty" db:"media_urls"`
	MediaType     *string     `json:"mediaType,omitempty" db:"media_type"`
	Location      *string     `json:"location,omitempty" db:"location"`
	Tags          []string    `json:"tags,omitempty" db:"tags"`
	LikesCount    int64       `json:"likesCount" db:"likes_count"`
	CommentsCount int64       `json:"commentsCount" db:"comments_count"`
	CreatedAt     int64       `json:"createdAt" db:"created_at"`
	UpdatedAt     int64       `json:"updatedAt" db:"updated_at"`
	User          *PostAuthor `json:"user,omitempty"`
}

type Comment struct {
	ID        int64       `json:"id" db:"id"`
	PostID    int64       `json:"postId" db:"post_id"`
	UserID    int64       `json:"userId" db:"user_id"`
	Content   string      `json:"content" db:"content"`
	CreatedAt int64       `json:"createdAt" db:"created_at"`
	User      *PostAuthor `json:"user,omitempty"`
}

type JobOrder struct {
	ID              int64    `json:"id" db:"id"`
	BusinessOwnerID int64    `json:"businessOwnerId" db:"business_owner_id"`
	Title           string   `json:"title" db:"title"`
	Description     string   `json:"description" db:"description"`
	BudgetRange     *string  `json:"budgetRange,omitempty" db:"budget_range"`
	ProjectSize     *string  `json:"projectSize,omitempty" db:"project_size"`
	Deadline        *int64   `json:"deadline,omitempty" db:"deadline"`
	Location        *string  `json:"location,omitempty" db:"location"`
	RequiredSkills  []string `json:"requiredSkills,omitempty" db:"required_skills"`
	Status          string   `json:"status" db:"status"`
	CreatedAt       int64    `json:"createdAt" db:"created_at"`
	UpdatedAt       int64    `json:"updatedAt" db:"updated_at"`
}

type OtpVerification struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Otp       string `json:"otp" db:"otp"`
	ExpiresAt int64  `json:"expiresAt" db:"expires_at"`
	IsUsed    bool   `json:"isUsed" db:"is_used"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}

type ContactSubmission struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Email     string `json:"email" db:"email"`
	UserType  string `json:"userType" db:"user_type"`
	Message   string `json:"message" db:"message"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}

type NewsletterSubscription struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}

// ValidJobStatus reports whether s is one of the closed job order statuses.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// PublicAuthor returns the author projection of a user.
func (u *User) PublicAuthor() *PostAuthor {
	return &PostAuthor{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		UserType:     u.UserType,
		CompanyName:  u.CompanyName,
		BusinessType: u.BusinessType,
	}
}
