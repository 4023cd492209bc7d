package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
	"github.com/gorilla/mux"
)

type PostsHandler struct {
	postRepo    repository.PostRepo
	likeRepo    repository.LikeRepo
	commentRepo repository.CommentRepo
}

func NewPostsHandler(pr repository.PostRepo, lr repository.LikeRepo, cr repository.CommentRepo) *PostsHandler {
	return &PostsHandler{postRepo: pr, likeRepo: lr, commentRepo: cr}
}

type createPostRequest struct {
	Content   *string  `json:"content"`
	PostType  string   `json:"postType"`
	MediaURLs []string `json:"mediaUrls"`
	MediaType *string  `json:"mediaType"`
	Location  *string  `json:"location"`
	Tags      []string `json:"tags"`
}

func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validateBody(r.Context(), w, postSchema, body) {
		return
	}

	var req createPostRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Conditional shape rules: a text post needs content, a media post needs
	// at least one URL.
	switch req.PostType {
	case models.PostTypeText:
		if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
			writeValidationError(w, []fieldError{{Field: "content", Message: "content is required for text posts"}})
			return
		}
	case models.PostTypeMedia:
		if len(req.MediaURLs) == 0 {
			writeValidationError(w, []fieldError{{Field: "mediaUrls", Message: "mediaUrls is required for media posts"}})
			return
		}
	}

	post := models.Post{
		UserID:    userID,
		Content:   req.Content,
		PostType:  req.PostType,
		MediaURLs: req.MediaURLs,
		MediaType: req.MediaType,
		Location:  req.Location,
		Tags:      req.Tags,
	}

	id, err := h.postRepo.CreatePost(r.Context(), &post)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	created, err := h.postRepo.GetPostByID(r.Context(), id)
	if err != nil || created == nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "post": created}, http.StatusOK)
}

// ListPosts is the public feed with optional userId, postType and tags
// filters, newest first.
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f repository.PostFilters

	if s := q.Get("userId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		f.UserID = id
	}
	f.PostType = q.Get("postType")
	f.Tags = q["tags"]

	posts, err := h.postRepo.ListPosts(r.Context(), f)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, map[string]any{"success": true, "posts": posts}, http.StatusOK)
}

// ForYouFeed returns everyone else's posts, newest first. There is no
// ranking; this is a plain recency feed that excludes the requester.
func (h *PostsHandler) ForYouFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	posts, err := h.postRepo.ListPostsForYou(r.Context(), userID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, map[string]any{"success": true, "posts": posts}, http.StatusOK)
}

func (h *PostsHandler) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	posts, err := h.postRepo.ListPosts(r.Context(), repository.PostFilters{UserID: userID})
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, map[string]any{"success": true, "posts": posts}, http.StatusOK)
}

func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	writeJSON(w, map[string]any{"success": true, "post": post}, http.StatusOK)
}

// DeletePost removes the session user's own post. Non-owners get the same
// 404 as a missing post.
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	if !canModify(userID, post.UserID) {
		writeError(w, "Post not found", http.StatusNotFound)
		return
	}

	if err := h.postRepo.DeletePost(r.Context(), post.ID); err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true}, http.StatusOK)
}

// ToggleLike flips the like state for the session user.
func (h *PostsHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	liked, likes, err := h.likeRepo.ToggleLike(r.Context(), userID, post.ID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "liked": liked, "likesCount": likes}, http.StatusOK)
}

func (h *PostsHandler) GetLiked(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	liked, err := h.likeRepo.HasLiked(r.Context(), userID, post.ID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "liked": liked}, http.StatusOK)
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *PostsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeValidationError(w, []fieldError{{Field: "content", Message: "content is required"}})
		return
	}

	comment := models.Comment{PostID: post.ID, UserID: userID, Content: req.Content}
	id, err := h.commentRepo.CreateComment(r.Context(), &comment)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	created, err := h.commentRepo.GetCommentByID(r.Context(), id)
	if err != nil || created == nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "comment": created}, http.StatusOK)
}

func (h *PostsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	comments, err := h.commentRepo.ListCommentsByPost(r.Context(), post.ID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	writeJSON(w, map[string]any{"success": true, "comments": comments}, http.StatusOK)
}

// DeleteComment allows the comment author or the post owner to remove a
// comment. Anyone else gets the same 404 as a missing comment.
func (h *PostsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	commentID, err := strconv.ParseInt(mux.Vars(r)["commentId"], 10, 64)
	if err != nil || commentID <= 0 {
		writeError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := h.commentRepo.GetCommentByID(r.Context(), commentID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if comment == nil || comment.PostID != post.ID {
		writeError(w, "Comment not found", http.StatusNotFound)
		return
	}
	if !canModify(userID, comment.UserID) && !canModify(userID, post.UserID) {
		writeError(w, "Comment not found", http.StatusNotFound)
		return
	}

	if err := h.commentRepo.DeleteComment(r.Context(), commentID); err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true}, http.StatusOK)
}

// loadPost resolves the {id} route var to a post, writing the error response
// itself when the id is malformed or the post does not exist.
func (h *PostsHandler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || postID <= 0 {
		writeError(w, "Invalid post ID", http.StatusBadRequest)
		return nil, false
	}

	post, err := h.postRepo.GetPostByID(r.Context(), postID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		writeError(w, "Post not found", http.StatusNotFound)
		return nil, false
	}

	return post, true
}
