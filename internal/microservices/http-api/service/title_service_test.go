package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yamdb/internal/domain"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
)

type titleFixture struct {
	svc        TitleService
	titles     *MockTitleRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
}

func newTitleFixture() *titleFixture {
	f := &titleFixture{
		titles:     new(MockTitleRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
	}
	clock := domain.FixedClock(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	f.svc = NewTitleService(f.titles, f.categories, f.genres, clock, quietLogger())
	return f
}

func intPtr(i int) *int          { return &i }
func stringPtr(s string) *string { return &s }

func TestCreateTitle_ResolvesSlugs(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	films := &models.Category{ID: 3, Name: "Films", Slug: "films"}
	genres := []models.Genre{{ID: 1, Slug: "drama"}, {ID: 2, Slug: "crime"}}

	f.categories.On("FindBySlug", ctx, "films").Return(films, nil)
	f.genres.On("FindBySlugs", ctx, []string{"drama", "crime"}).Return(genres, nil)
	f.titles.On("Create", ctx, mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Title).ID = 42 }).
		Return(nil)
	f.titles.On("GetByID", ctx, int64(42)).Return(&models.Title{ID: 42, Name: "The Godfather"}, nil)

	title, err := f.svc.Create(ctx, dto.TitleCreateRequest{
		Name:     "The Godfather",
		Year:     intPtr(1972),
		Genre:    []string{"drama", "crime", "drama"},
		Category: stringPtr("films"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), title.ID)

	created := f.titles.Calls[0].Arguments.Get(1).(*models.Title)
	assert.Equal(t, 1972, created.Year)
	require.NotNil(t, created.CategoryID)
	assert.Equal(t, int64(3), *created.CategoryID)
	assert.Len(t, created.Genres, 2)
}

func TestCreateTitle_YearBounds(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.TitleCreateRequest{Name: "Future", Year: intPtr(2027)})
	assert.ErrorIs(t, err, domain.ErrYearInFuture)

	_, err = f.svc.Create(ctx, dto.TitleCreateRequest{Name: "Zero", Year: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrYearTooEarly)

	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_UnknownReferences(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()

	f.categories.On("FindBySlug", ctx, "nope").Return(nil, fmt.Errorf("find category: %w", domain.ErrNotFound))
	_, err := f.svc.Create(ctx, dto.TitleCreateRequest{Name: "X", Year: intPtr(2000), Category: stringPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.genres.On("FindBySlugs", ctx, []string{"drama", "ghost"}).Return([]models.Genre{{ID: 1, Slug: "drama"}}, nil)
	_, err = f.svc.Create(ctx, dto.TitleCreateRequest{Name: "X", Year: intPtr(2000), Genre: []string{"drama", "ghost"}})
	assert.ErrorIs(t, err, domain.ErrUnknownGenre)
}

func TestUpdateTitle_PartialKeepsOtherFields(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	catID := int64(3)
	existing := &models.Title{
		ID:         5,
		Name:       "Old",
		Year:       1999,
		CategoryID: &catID,
		Category:   &models.Category{ID: 3, Slug: "films"},
		Genres:     []models.Genre{{ID: 1, Slug: "drama"}},
	}
	f.titles.On("GetByID", ctx, int64(5)).Return(existing, nil)
	f.titles.On("Update", ctx, existing).Return(nil)

	_, err := f.svc.Update(ctx, 5, dto.TitlePatchRequest{Name: stringPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", existing.Name)
	assert.Equal(t, 1999, existing.Year)
	assert.Equal(t, &catID, existing.CategoryID)
	assert.Len(t, existing.Genres, 1)
	f.genres.AssertNotCalled(t, "FindBySlugs", mock.Anything, mock.Anything)
}

func TestUpdateTitle_FullReplaceClearsCategoryAndGenres(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	catID := int64(3)
	existing := &models.Title{ID: 5, Name: "Old", Year: 1999, CategoryID: &catID, Genres: []models.Genre{{ID: 1}}}
	f.titles.On("GetByID", ctx, int64(5)).Return(existing, nil)
	f.titles.On("Update", ctx, existing).Return(nil)
	f.genres.On("FindBySlugs", ctx, []string{}).Return([]models.Genre{}, nil)

	_, err := f.svc.Update(ctx, 5, dto.TitleCreateRequest{Name: "Replaced", Year: intPtr(2001)}.ToPatch())
	require.NoError(t, err)
	assert.Nil(t, existing.CategoryID)
	assert.Nil(t, existing.Category)
	assert.Empty(t, existing.Genres)
	assert.Equal(t, 2001, existing.Year)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	f.titles.On("Delete", ctx, int64(9)).Return(fmt.Errorf("delete title: %w", domain.ErrNotFound))

	assert.ErrorIs(t, f.svc.Delete(ctx, 9), domain.ErrNotFound)
}
