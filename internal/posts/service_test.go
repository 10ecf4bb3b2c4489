package posts

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/ordering"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRepo mirrors the mongo repository contract, including the
// deterministic sort of GetAllOrdered.
type memoryRepo struct {
	mu        sync.Mutex
	posts     []models.Post
	failOrder map[string]error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{failOrder: make(map[string]error)}
}

func (m *memoryRepo) Add(post models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.posts {
		if existing.Slug == post.Slug {
			return post, models.ErrDuplicateSlug
		}
	}
	post.MongoID = primitive.NewObjectID()
	m.posts = append(m.posts, post)
	return post, nil
}

func (m *memoryRepo) GetBySlug(slug string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, post := range m.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return models.Post{}, models.ErrNotFound
}

func (m *memoryRepo) GetByID(id primitive.ObjectID) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, post := range m.posts {
		if post.MongoID == id {
			return post, nil
		}
	}
	return models.Post{}, models.ErrNotFound
}

func (m *memoryRepo) GetAllOrdered() ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]models.Post, len(m.posts))
	copy(result, m.posts)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].MongoID.Hex() < result[j].MongoID.Hex()
	})
	return result, nil
}

func (m *memoryRepo) GetAllByCreated() ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]models.Post, len(m.posts))
	copy(result, m.posts)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memoryRepo) MaxOrder() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := -1
	for _, post := range m.posts {
		if post.Order > max {
			max = post.Order
		}
	}
	return max, nil
}

func (m *memoryRepo) UpdateOrder(id primitive.ObjectID, order int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOrder[id.Hex()]; ok {
		return err
	}
	for i := range m.posts {
		if m.posts[i].MongoID == id {
			m.posts[i].Order = order
			return nil
		}
	}
	return nil
}

func (m *memoryRepo) Remove(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].MongoID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *memoryRepo) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.posts)), nil
}

func setupService(t *testing.T) (*Service, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	return NewService(repo, mediator.NewDispatcher()), repo
}

func draft(slug string) models.PostDraft {
	return models.PostDraft{
		Slug:     slug,
		Title:    "Case study " + slug,
		Category: models.CategoryBranding,
		Type:     models.TypeHospitality,
	}
}

func createPosts(t *testing.T, service *Service, slugs ...string) map[string]models.Post {
	t.Helper()
	created := make(map[string]models.Post, len(slugs))
	for _, slug := range slugs {
		post, err := service.Create(draft(slug))
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", slug, err)
		}
		created[slug] = post
	}
	return created
}

func orderedSlugs(t *testing.T, service *Service) []string {
	t.Helper()
	listed, err := service.ListOrdered()
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	slugs := make([]string, 0, len(listed))
	for _, post := range listed {
		slugs = append(slugs, post.Slug)
	}
	return slugs
}

func TestCreateAppendsToEnd(t *testing.T) {
	service, _ := setupService(t)
	createPosts(t, service, "p1", "p2", "p3")

	listed, err := service.ListOrdered()
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	for i, post := range listed {
		if post.Order != i {
			t.Errorf("post %s order = %d, want %d", post.Slug, post.Order, i)
		}
	}
}

func TestCreateDuplicateSlugDoesNotMutate(t *testing.T) {
	service, repo := setupService(t)
	createPosts(t, service, "p1")

	_, err := service.Create(draft("p1"))
	if !errors.Is(err, models.ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
	count, _ := repo.Count()
	if count != 1 {
		t.Fatalf("expected repository untouched, got %d posts", count)
	}
}

func TestCreateValidation(t *testing.T) {
	service, _ := setupService(t)
	cases := []struct {
		name  string
		draft models.PostDraft
	}{
		{"missing title", models.PostDraft{Slug: "x", Category: models.CategoryTech, Type: models.TypeSports}},
		{"missing slug", models.PostDraft{Title: "x", Category: models.CategoryTech, Type: models.TypeSports}},
		{"missing category", models.PostDraft{Title: "x", Slug: "x", Type: models.TypeSports}},
		{"unknown category", models.PostDraft{Title: "x", Slug: "x", Category: "Cooking", Type: models.TypeSports}},
		{"missing type", models.PostDraft{Title: "x", Slug: "x", Category: models.CategoryTech}},
		{"unknown type", models.PostDraft{Title: "x", Slug: "x", Category: models.CategoryTech, Type: "Space"}},
	}
	for _, tc := range cases {
		_, err := service.Create(tc.draft)
		var validation models.ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateRejectsBadSections(t *testing.T) {
	service, _ := setupService(t)
	bad := draft("p1")
	bad.Sections = []models.Section{{Kind: "video"}}
	if _, err := service.Create(bad); err == nil {
		t.Fatalf("expected unknown section kind to be rejected")
	}

	bad = draft("p2")
	bad.Sections = []models.Section{{Kind: models.SectionSingleImage, Images: []string{"a.jpg", "b.jpg"}}}
	if _, err := service.Create(bad); err == nil {
		t.Fatalf("expected two images in a singleImage section to be rejected")
	}

	good := draft("p3")
	good.Sections = []models.Section{
		models.TextSection("body"),
		models.SingleImageSection("a.jpg"),
		models.DoubleImageSection("b.jpg", "c.jpg"),
	}
	if _, err := service.Create(good); err != nil {
		t.Fatalf("expected valid sections to be accepted, got %v", err)
	}
}

func TestReorderFullSequence(t *testing.T) {
	service, _ := setupService(t)
	created := createPosts(t, service, "p1", "p2", "p3", "p4", "p5")

	submitted := ordering.Sequence{
		created["p5"].MongoID.Hex(),
		created["p1"].MongoID.Hex(),
		created["p4"].MongoID.Hex(),
		created["p2"].MongoID.Hex(),
		created["p3"].MongoID.Hex(),
	}
	if err := service.Reorder(submitted); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	got := orderedSlugs(t, service)
	want := []string{"p5", "p1", "p4", "p2", "p3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered slugs = %v, want %v", got, want)
		}
	}

	// Rank-derived layout: only the leading post is wide.
	for rank := range want {
		wantLayout := ordering.LayoutSmall
		if rank == 0 {
			wantLayout = ordering.LayoutWide
		}
		if got := ordering.LayoutOf(rank); got != wantLayout {
			t.Errorf("LayoutOf(%d) = %q, want %q", rank, got, wantLayout)
		}
	}

	converged, err := service.ConfirmOrder(submitted)
	if err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}
	if !converged {
		t.Fatalf("expected submitted order to converge")
	}
}

func TestReorderIdempotent(t *testing.T) {
	service, _ := setupService(t)
	created := createPosts(t, service, "p1", "p2", "p3")

	submitted := ordering.Sequence{
		created["p3"].MongoID.Hex(),
		created["p1"].MongoID.Hex(),
		created["p2"].MongoID.Hex(),
	}
	if err := service.Reorder(submitted); err != nil {
		t.Fatalf("first Reorder failed: %v", err)
	}
	first := orderedSlugs(t, service)
	if err := service.Reorder(submitted); err != nil {
		t.Fatalf("second Reorder failed: %v", err)
	}
	second := orderedSlugs(t, service)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("resubmission changed the order: %v then %v", first, second)
		}
	}
}

func TestReorderOmissionKeepsStaleOrder(t *testing.T) {
	service, repo := setupService(t)
	created := createPosts(t, service, "p1", "p2", "p3")

	before, err := repo.GetByID(created["p3"].MongoID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	// p3 is left out: its sort key must stay what it was.
	submitted := ordering.Sequence{
		created["p2"].MongoID.Hex(),
		created["p1"].MongoID.Hex(),
	}
	if err := service.Reorder(submitted); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	after, err := repo.GetByID(created["p3"].MongoID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if after.Order != before.Order {
		t.Fatalf("omitted post order changed from %d to %d", before.Order, after.Order)
	}
	count, _ := repo.Count()
	if count != 3 {
		t.Fatalf("omitted post must not be deleted, have %d posts", count)
	}
}

func TestReorderEmptyIsNoOp(t *testing.T) {
	service, _ := setupService(t)
	createPosts(t, service, "p1", "p2")
	before := orderedSlugs(t, service)
	if err := service.Reorder(nil); err != nil {
		t.Fatalf("empty Reorder failed: %v", err)
	}
	after := orderedSlugs(t, service)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("empty reorder changed the order: %v then %v", before, after)
		}
	}
}

func TestReorderRejectsDuplicates(t *testing.T) {
	service, _ := setupService(t)
	created := createPosts(t, service, "p1", "p2")
	id := created["p1"].MongoID.Hex()
	err := service.Reorder(ordering.Sequence{id, id})
	var validation models.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for duplicate ids, got %v", err)
	}
}

func TestReorderRejectsMalformedID(t *testing.T) {
	service, _ := setupService(t)
	err := service.Reorder(ordering.Sequence{"not-an-object-id"})
	var validation models.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for malformed id, got %v", err)
	}
}

func TestReorderPartialFailureReportsApplied(t *testing.T) {
	service, repo := setupService(t)
	created := createPosts(t, service, "p1", "p2", "p3")
	repo.failOrder[created["p3"].MongoID.Hex()] = fmt.Errorf("storage unavailable")

	// p3's write fails at position 1; p1 at position 2 is never reached.
	submitted := ordering.Sequence{
		created["p2"].MongoID.Hex(),
		created["p3"].MongoID.Hex(),
		created["p1"].MongoID.Hex(),
	}
	err := service.Reorder(submitted)
	var reorderErr models.ReorderError
	if !errors.As(err, &reorderErr) {
		t.Fatalf("expected ReorderError, got %v", err)
	}
	if len(reorderErr.Applied) != 1 || reorderErr.Applied[0] != submitted[0] {
		t.Fatalf("Applied = %v, want the single id written before the failure", reorderErr.Applied)
	}

	// The convergence check must now report a mismatch.
	converged, err := service.ConfirmOrder(submitted)
	if err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}
	if converged {
		t.Fatalf("expected partial reorder not to converge")
	}
}

func TestDeleteKeepsRelativeOrder(t *testing.T) {
	service, _ := setupService(t)
	created := createPosts(t, service, "p1", "p2", "p3", "p4", "p5")

	submitted := ordering.Sequence{
		created["p5"].MongoID.Hex(),
		created["p1"].MongoID.Hex(),
		created["p4"].MongoID.Hex(),
		created["p2"].MongoID.Hex(),
		created["p3"].MongoID.Hex(),
	}
	if err := service.Reorder(submitted); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if err := service.Delete(created["p3"].MongoID.Hex()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got := orderedSlugs(t, service)
	want := []string{"p5", "p1", "p4", "p2"}
	if len(got) != len(want) {
		t.Fatalf("ordered slugs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered slugs = %v, want %v", got, want)
		}
	}
}

func TestDeleteUnknownID(t *testing.T) {
	service, _ := setupService(t)
	if err := service.Delete(primitive.NewObjectID().Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := service.Delete("garbage"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestGetBySlug(t *testing.T) {
	service, _ := setupService(t)
	createPosts(t, service, "p1")
	post, err := service.GetBySlug("p1")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if post.Slug != "p1" {
		t.Fatalf("Slug = %q, want p1", post.Slug)
	}
	if _, err := service.GetBySlug("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
