package services

import (
	"fmt"
	"sort"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

// Page is one slice of a feed.
type Page struct {
	Posts      []*models.Post
	Number     int
	TotalPages int
	TotalCount int
}

// HasPrev reports whether an earlier page exists.
func (p *Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p *Page) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber returns the previous page number.
func (p *Page) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the next page number.
func (p *Page) NextNumber() int { return p.Number + 1 }

// FeedService assembles the ordered, paginated post listings: the
// public index feed, category feeds and profile feeds. Posts come back
// with author, category and location attached and the comment count
// annotated, ordered by pub date descending (post ID descending on
// ties).
type FeedService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	locationRepo repositories.LocationRepository
	pageSize     int
}

// NewFeedService creates a new FeedService. A pageSize of zero means
// DefaultPageSize.
func NewFeedService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	locationRepo repositories.LocationRepository,
	pageSize int,
) *FeedService {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &FeedService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		pageSize:     pageSize,
	}
}

// PublicFeed returns the page of publicly live posts.
func (s *FeedService) PublicFeed(now time.Time, page int) (*Page, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}
	if err := s.attachRelations(posts); err != nil {
		return nil, err
	}
	posts = filterLive(posts, now)
	if err := s.annotateCounts(posts); err != nil {
		return nil, err
	}
	sortFeed(posts)
	return s.paginate(posts, page), nil
}

// CategoryFeed returns the page of live posts in the published
// category identified by slug. An unknown or unpublished category is
// reported as ErrNotFound.
func (s *FeedService) CategoryFeed(slug string, now time.Time, page int) (*models.Category, *Page, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	if !category.IsPublished {
		return nil, nil, repositories.ErrNotFound
	}

	posts, err := s.postRepo.List()
	if err != nil {
		return nil, nil, err
	}
	var scoped []*models.Post
	for _, post := range posts {
		if post.CategoryID == category.ID {
			scoped = append(scoped, post)
		}
	}
	if err := s.attachRelations(scoped); err != nil {
		return nil, nil, err
	}
	scoped = filterLive(scoped, now)
	if err := s.annotateCounts(scoped); err != nil {
		return nil, nil, err
	}
	sortFeed(scoped)
	return category, s.paginate(scoped, page), nil
}

// ProfileFeed returns the page of profile's posts. The profile owner
// sees every post, drafts and scheduled entries included; anyone else
// sees only the publicly live subset.
func (s *FeedService) ProfileFeed(profile, viewer *models.User, now time.Time, page int) (*Page, error) {
	posts, err := s.postRepo.ListByAuthor(profile.ID)
	if err != nil {
		return nil, err
	}
	if err := s.attachRelations(posts); err != nil {
		return nil, err
	}
	if viewer == nil || viewer.ID != profile.ID {
		posts = filterLive(posts, now)
	}
	if err := s.annotateCounts(posts); err != nil {
		return nil, err
	}
	sortFeed(posts)
	return s.paginate(posts, page), nil
}

// attachRelations loads the author, category and location of each
// post. Categories and locations are few, so they are loaded wholesale;
// authors are fetched once per distinct ID.
func (s *FeedService) attachRelations(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return err
	}
	categoryByID := make(map[int]*models.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	locations, err := s.locationRepo.List()
	if err != nil {
		return err
	}
	locationByID := make(map[int]*models.Location, len(locations))
	for _, location := range locations {
		locationByID[location.ID] = location
	}

	authorByID := make(map[int]*models.User)
	for _, post := range posts {
		author, ok := authorByID[post.AuthorID]
		if !ok {
			author, err = s.userRepo.GetByID(post.AuthorID)
			if err != nil {
				return fmt.Errorf("failed to load author of post %d: %w", post.ID, err)
			}
			authorByID[post.AuthorID] = author
		}
		post.Author = author
		if post.HasCategory() {
			post.Category = categoryByID[post.CategoryID]
		}
		if post.HasLocation() {
			post.Location = locationByID[post.LocationID]
		}
	}
	return nil
}

// annotateCounts fills in CommentCount for each post.
func (s *FeedService) annotateCounts(posts []*models.Post) error {
	for _, post := range posts {
		count, err := s.commentRepo.CountByPost(post.ID)
		if err != nil {
			return fmt.Errorf("failed to count comments for post %d: %w", post.ID, err)
		}
		post.CommentCount = count
	}
	return nil
}

// filterLive keeps only publicly live posts. Relations must already be
// attached so the category rule can be applied.
func filterLive(posts []*models.Post, now time.Time) []*models.Post {
	var live []*models.Post
	for _, post := range posts {
		if models.IsPostLive(post, now) {
			live = append(live, post)
		}
	}
	return live
}

// sortFeed orders posts by pub date descending, newest first. Equal
// pub dates fall back to ID descending so the order is deterministic.
func sortFeed(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].PubDate.After(posts[j].PubDate)
	})
}

// paginate slices posts into the requested 1-based page. Out-of-range
// page numbers clamp to the first or last page instead of erroring.
func (s *FeedService) paginate(posts []*models.Post, number int) *Page {
	total := len(posts)
	totalPages := (total + s.pageSize - 1) / s.pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * s.pageSize
	end := start + s.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Posts:      posts[start:end],
		Number:     number,
		TotalPages: totalPages,
		TotalCount: total,
	}
}
