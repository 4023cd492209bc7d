// Package mock provides in-memory repository implementations for handler
// tests.
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
)

type Mocks struct {
	UserRepo    *mockUserRepo
	OtpRepo     *mockOtpRepo
	FeedRepo    *mockFeedRepo
	JobRepo     *mockJobOrderRepo
	ContactRepo *mockContactRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo: &mockUserRepo{Users: map[int64]*models.User{}, NextID: 1},
		OtpRepo:  &mockOtpRepo{NextID: 1},
		FeedRepo: &mockFeedRepo{
			Posts:    map[int64]*models.Post{},
			Likes:    map[string]bool{},
			Comments: map[int64]*models.Comment{},
			NextID:   1,
		},
		JobRepo:     &mockJobOrderRepo{Orders: map[int64]*models.JobOrder{}, NextID: 1},
		ContactRepo: &mockContactRepo{Newsletter: map[string]*models.NewsletterSubscription{}, NextID: 1},
	}
}

// --- users ---

type mockUserRepo struct {
	Users     map[int64]*models.User
	NextID    int64
	CreateErr error
	Err       error
}

var _ repository.UserRepo = (*mockUserRepo)(nil)

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	stored := *u
	stored.ID = id
	stored.CreatedAt = time.Now().UnixMilli()
	m.Users[id] = &stored
	return id, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if u, ok := m.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) SetUserVerified(ctx context.Context, id int64, verified bool) error {
	if u, ok := m.Users[id]; ok {
		u.IsVerified = verified
	}
	return nil
}

func (m *mockUserRepo) ListBusinesses(ctx context.Context, f repository.DirectoryFilters) ([]models.User, error) {
	return m.listByType(models.UserTypeBusiness, f)
}

func (m *mockUserRepo) ListContractors(ctx context.Context, f repository.DirectoryFilters) ([]models.User, error) {
	return m.listByType(models.UserTypeContractor, f)
}

func (m *mockUserRepo) listByType(userType string, f repository.DirectoryFilters) ([]models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var ids []int64
	for id := range m.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.User
	for _, id := range ids {
		u := m.Users[id]
		if u.UserType != userType {
			continue
		}
		if f.BusinessType != "" && (u.BusinessType == nil || *u.BusinessType != f.BusinessType) {
			continue
		}
		if f.Location != "" && (u.Location == nil || !strings.Contains(strings.ToLower(*u.Location), strings.ToLower(f.Location))) {
			continue
		}
		if f.Search != "" && !matchesSearch(u, f.Search) {
			continue
		}
		if len(f.Skills) > 0 && !anyOverlap(u.Skills, f.Skills) {
			continue
		}
		if len(f.Tags) > 0 && !anyOverlap(u.Tags, f.Tags) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func matchesSearch(u *models.User, search string) bool {
	s := strings.ToLower(search)
	fields := []string{u.FirstName, u.LastName}
	if u.CompanyName != nil {
		fields = append(fields, *u.CompanyName)
	}
	if u.Bio != nil {
		fields = append(fields, *u.Bio)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), s) {
			return true
		}
	}
	return false
}

func anyOverlap(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// --- otp ---

type mockOtpRepo struct {
	Records   []*models.OtpVerification
	NextID    int64
	CreateErr error
}

var _ repository.OtpRepo = (*mockOtpRepo)(nil)

func (m *mockOtpRepo) CreateOtp(ctx context.Context, o *models.OtpVerification) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	stored := *o
	stored.ID = id
	stored.CreatedAt = time.Now().UnixMilli()
	m.Records = append(m.Records, &stored)
	return id, nil
}

func (m *mockOtpRepo) GetValidOtp(ctx context.Context, email, code string) (*models.OtpVerification, error) {
	nowMs := time.Now().UnixMilli()
	for i := len(m.Records) - 1; i >= 0; i-- {
		r := m.Records[i]
		if r.Email == email && r.Otp == code && !r.IsUsed && r.ExpiresAt > nowMs {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockOtpRepo) MarkOtpUsed(ctx context.Context, id int64) error {
	for _, r := range m.Records {
		if r.ID == id {
			r.IsUsed = true
		}
	}
	return nil
}

// --- posts, likes, comments ---

type mockFeedRepo struct {
	Posts    map[int64]*models.Post
	Likes    map[string]bool
	Comments map[int64]*models.Comment
	NextID   int64

	CreateErr error
	Err       error
}

var _ repository.PostRepo = (*mockFeedRepo)(nil)
var _ repository.LikeRepo = (*mockFeedRepo)(nil)
var _ repository.CommentRepo = (*mockFeedRepo)(nil)

func likeKey(userID, postID int64) string {
	return fmt.Sprintf("%d:%d", userID, postID)
}

func (m *mockFeedRepo) CreatePost(ctx context.Context, p *models.Post) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	stored := *p
	stored.ID = id
	stored.CreatedAt = id // monotonic stand-in for insertion time
	stored.UpdatedAt = id
	m.Posts[id] = &stored
	return id, nil
}

func (m *mockFeedRepo) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *mockFeedRepo) ListPosts(ctx context.Context, f repository.PostFilters) ([]models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Post
	for _, p := range m.sortedPosts() {
		if f.UserID > 0 && p.UserID != f.UserID {
			continue
		}
		if f.PostType != "" && p.PostType != f.PostType {
			continue
		}
		if len(f.Tags) > 0 && !anyOverlap(p.Tags, f.Tags) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockFeedRepo) ListPostsForYou(ctx context.Context, excludeUserID int64) ([]models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Post
	for _, p := range m.sortedPosts() {
		if p.UserID == excludeUserID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockFeedRepo) sortedPosts() []*models.Post {
	var posts []*models.Post
	for _, p := range m.Posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts
}

func (m *mockFeedRepo) DeletePost(ctx context.Context, id int64) error {
	delete(m.Posts, id)
	for cid, c := range m.Comments {
		if c.PostID == id {
			delete(m.Comments, cid)
		}
	}
	return nil
}

func (m *mockFeedRepo) ToggleLike(ctx context.Context, userID, postID int64) (bool, int64, error) {
	if m.Err != nil {
		return false, 0, m.Err
	}
	p, ok := m.Posts[postID]
	if !ok {
		return false, 0, fmt.Errorf("post %d not found", postID)
	}
	key := likeKey(userID, postID)
	if m.Likes[key] {
		delete(m.Likes, key)
		p.LikesCount--
		return false, p.LikesCount, nil
	}
	m.Likes[key] = true
	p.LikesCount++
	return true, p.LikesCount, nil
}

func (m *mockFeedRepo) HasLiked(ctx context.Context, userID, postID int64) (bool, error) {
	return m.Likes[likeKey(userID, postID)], nil
}

func (m *mockFeedRepo) CreateComment(ctx context.Context, c *models.Comment) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	stored := *c
	stored.ID = id
	stored.CreatedAt = id
	m.Comments[id] = &stored
	if p, ok := m.Posts[c.PostID]; ok {
		p.CommentsCount++
	}
	return id, nil
}

func (m *mockFeedRepo) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	if c, ok := m.Comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *mockFeedRepo) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var ids []int64
	for id, c := range m.Comments {
		if c.PostID == postID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []models.Comment
	for _, id := range ids {
		out = append(out, *m.Comments[id])
	}
	return out, nil
}

func (m *mockFeedRepo) DeleteComment(ctx context.Context, id int64) error {
	if c, ok := m.Comments[id]; ok {
		if p, pok := m.Posts[c.PostID]; pok && p.CommentsCount > 0 {
			p.CommentsCount--
		}
		delete(m.Comments, id)
	}
	return nil
}

// --- job orders ---

type mockJobOrderRepo struct {
	Orders    map[int64]*models.JobOrder
	NextID    int64
	CreateErr error
	Err       error
}

var _ repository.JobOrderRepo = (*mockJobOrderRepo)(nil)

func (m *mockJobOrderRepo) CreateJobOrder(ctx context.Context, j *models.JobOrder) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	stored := *j
	stored.ID = id
	stored.CreatedAt = id
	stored.UpdatedAt = id
	m.Orders[id] = &stored
	return id, nil
}

func (m *mockJobOrderRepo) GetJobOrderByID(ctx context.Context, id int64) (*models.JobOrder, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if j, ok := m.Orders[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (m *mockJobOrderRepo) ListJobOrdersByOwner(ctx context.Context, ownerID int64, status string) ([]models.JobOrder, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var ids []int64
	for id, j := range m.Orders {
		if j.BusinessOwnerID != ownerID {
			continue
		}
		if status != "" && j.Status != status {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	var out []models.JobOrder
	for _, id := range ids {
		out = append(out, *m.Orders[id])
	}
	return out, nil
}

func (m *mockJobOrderRepo) UpdateJobOrder(ctx context.Context, j *models.JobOrder) error {
	if _, ok := m.Orders[j.ID]; !ok {
		return fmt.Errorf("job order %d not found", j.ID)
	}
	stored := *j
	m.Orders[j.ID] = &stored
	return nil
}

func (m *mockJobOrderRepo) DeleteJobOrder(ctx context.Context, id int64) error {
	delete(m.Orders, id)
	return nil
}

// --- contact / newsletter ---

type mockContactRepo struct {
	Submissions []*models.ContactSubmission
	Newsletter  map[string]*models.NewsletterSubscription
	NextID      int64
	CreateErr   error
}

var _ repository.ContactRepo = (*mockContactRepo)(nil)

func (m *mockContactRepo) CreateContactSubmission(ctx context.Context, c *models.ContactSubmission) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	stored := *c
	stored.ID = id
	m.Submissions = append(m.Submissions, &stored)
	return id, nil
}

func (m *mockContactRepo) CreateNewsletterSubscription(ctx context.Context, email string) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextID
	m.NextID++
	m.Newsletter[email] = &models.NewsletterSubscription{ID: id, Email: email}
	return id, nil
}

func (m *mockContactRepo) GetNewsletterSubscriptionByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	if n, ok := m.Newsletter[email]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}
