package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gamehub/internal/apperr"
	"gamehub/internal/models"
)

type pair struct{ a, b uint }

// fakeStore is an in-memory Store. failures makes the named method fail the
// given number of times (-1 for always); calls counts every invocation.
type fakeStore struct {
	mu sync.Mutex

	nextID       uint
	clock        time.Time
	profiles     map[uint]models.Profile
	posts        map[uint]models.Post
	comments     map[uint]models.Comment
	likes        map[pair]bool
	commentLikes map[pair]bool
	follows      map[pair]bool
	reports      []models.Report

	failures map[string]int
	calls    map[string]int
	// insertRaces makes Has* report false once for a row that exists, as if a
	// concurrent request inserted it in between.
	insertRaces bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		profiles:     map[uint]models.Profile{},
		posts:        map[uint]models.Post{},
		comments:     map[uint]models.Comment{},
		likes:        map[pair]bool{},
		commentLikes: map[pair]bool{},
		follows:      map[pair]bool{},
		failures:     map[string]int{},
		calls:        map[string]int{},
	}
}

func (s *fakeStore) failFor(method string, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = times
}

func (s *fakeStore) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// enter records a call and returns the injected failure, if any. Caller holds mu.
func (s *fakeStore) enter(method string) error {
	s.calls[method]++
	n := s.failures[method]
	if n == 0 {
		return nil
	}
	if n > 0 {
		s.failures[method] = n - 1
	}
	return fmt.Errorf("%w: injected %s failure", apperr.ErrNetwork, method)
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

// seeding helpers

func (s *fakeStore) addProfile(username string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.profiles[id] = models.Profile{ID: id, Username: username, Email: username + "@example.com", CreatedAt: s.tick()}
	return id
}

func (s *fakeStore) addPost(authorID uint, content string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.posts[id] = models.Post{ID: id, AuthorID: authorID, Content: content, CreatedAt: s.tick()}
	return id
}

func (s *fakeStore) addComment(postID, userID uint, content string, parentID *uint) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.comments[id] = models.Comment{ID: id, PostID: postID, UserID: userID, Content: content, ParentID: parentID, CreatedAt: s.tick()}
	return id
}

// PostStore

func (s *fakeStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.listPosts("ListPosts", func(models.Post) bool { return true })
}

func (s *fakeStore) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.listPosts("ListPostsByAuthor", func(p models.Post) bool { return p.AuthorID == authorID })
}

func (s *fakeStore) listPosts(method string, keep func(models.Post) bool) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return nil, err
	}
	var out []models.Post
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *fakeStore) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetPost"); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, apperr.NotFound("post", id)
	}
	return &p, nil
}

func (s *fakeStore) PostExists(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("PostExists"); err != nil {
		return false, err
	}
	_, ok := s.posts[id]
	return ok, nil
}

func (s *fakeStore) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreatePost"); err != nil {
		return err
	}
	post.ID = s.id()
	post.CreatedAt = s.tick()
	s.posts[post.ID] = *post
	return nil
}

func (s *fakeStore) DeletePost(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeletePost"); err != nil {
		return err
	}
	if _, ok := s.posts[id]; !ok {
		return apperr.NotFound("post", id)
	}
	for cid, c := range s.comments {
		if c.PostID == id {
			s.dropCommentLikes(cid)
			delete(s.comments, cid)
		}
	}
	for k := range s.likes {
		if k.b == id {
			delete(s.likes, k)
		}
	}
	delete(s.posts, id)
	return nil
}

func (s *fakeStore) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CountPostsByAuthor"); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// CommentStore

func (s *fakeStore) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListComments"); err != nil {
		return nil, err
	}
	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeStore) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetComment"); err != nil {
		return nil, err
	}
	c, ok := s.comments[id]
	if !ok {
		return nil, apperr.NotFound("comment", id)
	}
	return &c, nil
}

func (s *fakeStore) CommentExists(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CommentExists"); err != nil {
		return false, err
	}
	_, ok := s.comments[id]
	return ok, nil
}

func (s *fakeStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateComment"); err != nil {
		return err
	}
	comment.ID = s.id()
	comment.CreatedAt = s.tick()
	s.comments[comment.ID] = *comment
	return nil
}

func (s *fakeStore) DeleteComment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteComment"); err != nil {
		return err
	}
	if _, ok := s.comments[id]; !ok {
		return apperr.NotFound("comment", id)
	}
	s.dropCommentLikes(id)
	delete(s.comments, id)
	return nil
}

func (s *fakeStore) dropCommentLikes(commentID uint) {
	for k := range s.commentLikes {
		if k.b == commentID {
			delete(s.commentLikes, k)
		}
	}
}

func (s *fakeStore) CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CountComments"); err != nil {
		return nil, err
	}
	want := idSet(postIDs)
	out := map[uint]int64{}
	for _, c := range s.comments {
		if want[c.PostID] {
			out[c.PostID]++
		}
	}
	return out, nil
}

// LikeStore

func (s *fakeStore) has(method string, rows map[pair]bool, k pair) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return false, err
	}
	if s.insertRaces && rows[k] {
		s.insertRaces = false
		return false, nil
	}
	return rows[k], nil
}

func (s *fakeStore) insert(method string, rows map[pair]bool, k pair) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return false, err
	}
	if rows[k] {
		return false, nil
	}
	rows[k] = true
	return true, nil
}

func (s *fakeStore) remove(method string, rows map[pair]bool, k pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return err
	}
	delete(rows, k)
	return nil
}

func (s *fakeStore) count(method string, rows map[pair]bool, ids []uint) (map[uint]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return nil, err
	}
	want := idSet(ids)
	out := map[uint]int64{}
	for k := range rows {
		if want[k.b] {
			out[k.b]++
		}
	}
	return out, nil
}

func (s *fakeStore) members(method string, rows map[pair]bool, userID uint, ids []uint) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return nil, err
	}
	out := map[uint]bool{}
	for _, id := range ids {
		if rows[pair{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

func (s *fakeStore) HasPostLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.has("HasPostLike", s.likes, pair{userID, postID})
}

func (s *fakeStore) InsertPostLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.insert("InsertPostLike", s.likes, pair{userID, postID})
}

func (s *fakeStore) DeletePostLike(ctx context.Context, userID, postID uint) error {
	return s.remove("DeletePostLike", s.likes, pair{userID, postID})
}

func (s *fakeStore) CountPostLikes(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return s.count("CountPostLikes", s.likes, postIDs)
}

func (s *fakeStore) PostsLikedBy(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return s.members("PostsLikedBy", s.likes, userID, postIDs)
}

func (s *fakeStore) HasCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.has("HasCommentLike", s.commentLikes, pair{userID, commentID})
}

func (s *fakeStore) InsertCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.insert("InsertCommentLike", s.commentLikes, pair{userID, commentID})
}

func (s *fakeStore) DeleteCommentLike(ctx context.Context, userID, commentID uint) error {
	return s.remove("DeleteCommentLike", s.commentLikes, pair{userID, commentID})
}

func (s *fakeStore) CountCommentLikes(ctx context.Context, commentIDs []uint) (map[uint]int64, error) {
	return s.count("CountCommentLikes", s.commentLikes, commentIDs)
}

func (s *fakeStore) CommentsLikedBy(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error) {
	return s.members("CommentsLikedBy", s.commentLikes, userID, commentIDs)
}

// ProfileStore

func (s *fakeStore) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetProfile"); err != nil {
		return nil, err
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperr.NotFound("profile", id)
	}
	return &p, nil
}

func (s *fakeStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetProfileByEmail"); err != nil {
		return nil, err
	}
	for _, p := range s.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: profile %s", apperr.ErrNotFound, email)
}

func (s *fakeStore) ProfilesByIDs(ctx context.Context, ids []uint) (map[uint]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ProfilesByIDs"); err != nil {
		return nil, err
	}
	out := map[uint]models.Profile{}
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakeStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateProfile"); err != nil {
		return err
	}
	for _, p := range s.profiles {
		if p.Email == profile.Email {
			return apperr.Validation("email already registered")
		}
	}
	profile.ID = s.id()
	profile.CreatedAt = s.tick()
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *fakeStore) UpdateProfile(ctx context.Context, id uint, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateProfile"); err != nil {
		return err
	}
	p, ok := s.profiles[id]
	if !ok {
		return apperr.NotFound("profile", id)
	}
	for k, v := range updates {
		switch k {
		case "username":
			p.Username = v.(string)
		case "bio":
			p.Bio = v.(string)
		case "avatar_url":
			url := v.(string)
			p.AvatarURL = &url
		case "cover_url":
			url := v.(string)
			p.CoverURL = &url
		}
	}
	s.profiles[id] = p
	return nil
}

// ReportStore

func (s *fakeStore) CreateReport(ctx context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateReport"); err != nil {
		return err
	}
	report.ID = s.id()
	report.CreatedAt = s.tick()
	s.reports = append(s.reports, *report)
	return nil
}

// FollowStore

func (s *fakeStore) HasFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.has("HasFollow", s.follows, pair{followerID, followingID})
}

func (s *fakeStore) InsertFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.insert("InsertFollow", s.follows, pair{followerID, followingID})
}

func (s *fakeStore) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	return s.remove("DeleteFollow", s.follows, pair{followerID, followingID})
}

func (s *fakeStore) CountFollowers(ctx context.Context, profileID uint) (int64, error) {
	m, err := s.count("CountFollowers", s.follows, []uint{profileID})
	return m[profileID], err
}

func (s *fakeStore) CountFollowing(ctx context.Context, profileID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CountFollowing"); err != nil {
		return 0, err
	}
	var n int64
	for k := range s.follows {
		if k.a == profileID {
			n++
		}
	}
	return n, nil
}

func idSet(ids []uint) map[uint]bool {
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

var _ Store = (*fakeStore)(nil)
