package gorm

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/pagination"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	db          *gorm.DB
	titles      *TitleRepository
	categories  *CategoryRepository
	genres      *GenreRepository
	castMembers *CastMemberRepository
	uow         *UnitOfWork
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = NewTestDB(s.T())
	s.titles = NewTitleRepository(s.db)
	s.categories = NewCategoryRepository(s.db)
	s.genres = NewGenreRepository(s.db)
	s.castMembers = NewCastMemberRepository(s.db)
	s.uow = NewUnitOfWork(s.db)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) newTitle(name string) *catalog.Title {
	t, err := catalog.NewTitle(catalog.Descriptive{
		Title:        name,
		Description:  "description of " + name,
		YearLaunched: 2010,
		Duration:     120,
		Rating:       catalog.RatingRate14,
	})
	s.Require().NoError(err)
	return t
}

func (s *RepositoryTestSuite) newCategory(name string) *catalog.Category {
	c, err := catalog.NewCategory(name, "", true)
	s.Require().NoError(err)
	s.Require().NoError(s.categories.Insert(s.ctx, c))
	return c
}

func (s *RepositoryTestSuite) TestTitle_InsertAndGetRoundTrip() {
	category := s.newCategory("Drama")
	genre, err := catalog.NewGenre("Crime", true)
	s.Require().NoError(err)
	s.Require().NoError(s.genres.Insert(s.ctx, genre))
	member, err := catalog.NewCastMember("Michael Mann", catalog.CastMemberDirector)
	s.Require().NoError(err)
	s.Require().NoError(s.castMembers.Insert(s.ctx, member))

	t := s.newTitle("Inception")
	t.AddCategory(category.ID)
	t.AddGenre(genre.ID)
	t.AddCastMember(member.ID)
	s.Require().NoError(t.UpdateSlot(catalog.SlotBanner, t.ID.String()+"/banner.png"))
	s.Require().NoError(t.UpdateSlot(catalog.SlotVideo, t.ID.String()+"/video.mp4"))

	s.Require().NoError(s.titles.Insert(s.ctx, t))

	got, err := s.titles.Get(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(t.Descriptive(), got.Descriptive())
	s.True(got.Categories().Equal(t.Categories()))
	s.True(got.Genres().Equal(t.Genres()))
	s.True(got.CastMembers().Equal(t.CastMembers()))
	s.Equal(t.ID.String()+"/banner.png", got.Media(catalog.SlotBanner).Path())
	s.Equal(t.ID.String()+"/video.mp4", got.Media(catalog.SlotVideo).Path())
	s.Nil(got.Media(catalog.SlotThumb))
	s.Nil(got.Media(catalog.SlotTrailer))
	s.ElementsMatch(t.StoredPaths(), got.StoredPaths())
}

func (s *RepositoryTestSuite) TestTitle_GetMissing() {
	_, err := s.titles.Get(s.ctx, uuid.New())
	s.ErrorIs(err, catalog.ErrTitleNotFound)
}

func (s *RepositoryTestSuite) TestTitle_UpdateReplacesRelationsAndSlots() {
	first := s.newCategory("Drama")
	second := s.newCategory("Documentary")

	t := s.newTitle("Heat")
	t.AddCategory(first.ID)
	s.Require().NoError(s.titles.Insert(s.ctx, t))

	loaded, err := s.titles.Get(s.ctx, t.ID)
	s.Require().NoError(err)
	loaded.RemoveAllCategories()
	loaded.AddCategory(second.ID)
	s.Require().NoError(loaded.UpdateDescriptive(catalog.Descriptive{
		Title:        "Heat (Director's Cut)",
		Description:  "longer",
		YearLaunched: 1995,
		Duration:     175,
		Rating:       catalog.RatingRate16,
	}))
	s.Require().NoError(loaded.UpdateSlot(catalog.SlotTrailer, t.ID.String()+"/trailer.mp4"))
	s.Require().NoError(loaded.SendToProcessing(catalog.SlotTrailer))

	s.Require().NoError(s.titles.Update(s.ctx, loaded))

	got, err := s.titles.Get(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("Heat (Director's Cut)", got.Title())
	s.Equal([]uuid.UUID{second.ID}, got.Categories().Slice())
	s.Equal(catalog.MediaStatusProcessing, got.Media(catalog.SlotTrailer).Status())
	s.Equal(loaded.GetVersion(), got.GetVersion())
}

func (s *RepositoryTestSuite) TestTitle_UpdateMissing() {
	err := s.titles.Update(s.ctx, s.newTitle("Ghost"))
	s.ErrorIs(err, catalog.ErrTitleNotFound)
}

func (s *RepositoryTestSuite) TestTitle_DeleteRemovesRowAndRelations() {
	category := s.newCategory("Drama")
	t := s.newTitle("Heat")
	t.AddCategory(category.ID)
	s.Require().NoError(s.titles.Insert(s.ctx, t))

	s.Require().NoError(s.titles.Delete(s.ctx, t))

	_, err := s.titles.Get(s.ctx, t.ID)
	s.ErrorIs(err, catalog.ErrTitleNotFound)

	var links int64
	s.Require().NoError(s.db.Model(&TitleCategoryModel{}).Where("title_id = ?", t.ID).Count(&links).Error)
	s.Zero(links)

	s.ErrorIs(s.titles.Delete(s.ctx, t), catalog.ErrTitleNotFound)
}

func (s *RepositoryTestSuite) TestTitle_SearchFiltersAndPaginates() {
	for _, name := range []string{"The Matrix", "Matrix Reloaded", "Heat", "100% Matrix_Fan"} {
		s.Require().NoError(s.titles.Insert(s.ctx, s.newTitle(name)))
	}

	input := pagination.SearchInput{Search: "matrix", PerPage: 2, OrderBy: "title", Order: pagination.OrderAsc}.
		Normalize("title", "title")

	out, err := s.titles.Search(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(int64(3), out.Total)
	s.Len(out.Items, 2)
	s.Equal(2, out.LastPage())
	s.Equal("100% Matrix_Fan", out.Items[0].Title())
	s.Equal("Matrix Reloaded", out.Items[1].Title())

	input.Search = "0% matrix_"
	out, err = s.titles.Search(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(int64(1), out.Total)
}

func (s *RepositoryTestSuite) TestReference_ExistingIDs() {
	a := s.newCategory("Drama")
	b := s.newCategory("Comedy")
	missing := uuid.New()

	found, err := s.categories.ExistingIDs(s.ctx, []uuid.UUID{a.ID, missing, b.ID})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{a.ID, b.ID}, found)

	found, err = s.genres.ExistingIDs(s.ctx, []uuid.UUID{a.ID})
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *RepositoryTestSuite) TestReference_GetDeleteSearch() {
	c := s.newCategory("Drama")

	got, err := s.categories.Get(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Drama", got.Name)

	input := pagination.SearchInput{Search: "dra"}.Normalize("name", "name")
	out, err := s.categories.Search(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(int64(1), out.Total)

	raw, err := s.categories.Search(s.ctx, pagination.SearchInput{})
	s.Require().NoError(err)
	s.Len(raw.Items, 1)
	s.Equal(1, raw.CurrentPage)
	s.Equal(pagination.DefaultPerPage, raw.PerPage)

	none, err := s.categories.Search(s.ctx, pagination.SearchInput{Search: "western"})
	s.Require().NoError(err)
	s.Empty(none.Items)
	s.Zero(none.Total)

	s.Require().NoError(s.categories.Delete(s.ctx, c.ID))
	_, err = s.categories.Get(s.ctx, c.ID)
	s.ErrorIs(err, catalog.ErrCategoryNotFound)
	s.ErrorIs(s.categories.Delete(s.ctx, c.ID), catalog.ErrCategoryNotFound)
}

func (s *RepositoryTestSuite) TestReference_DuplicateInsertIsConflict() {
	c := s.newCategory("Drama")
	err := s.categories.Insert(s.ctx, c)
	s.Require().Error(err)
	s.True(pkgerrors.IsConflict(err))
}

func (s *RepositoryTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	t := s.newTitle("Heat")

	tx, err := s.uow.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.titles.Insert(tx.Context(), t))

	_, err = s.titles.Get(tx.Context(), t.ID)
	s.Require().NoError(err)

	s.Require().NoError(tx.Rollback())

	_, err = s.titles.Get(s.ctx, t.ID)
	s.ErrorIs(err, catalog.ErrTitleNotFound)
}

func (s *RepositoryTestSuite) TestUnitOfWork_CommitPersistsWrites() {
	t := s.newTitle("Heat")

	tx, err := s.uow.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.titles.Insert(tx.Context(), t))
	s.Require().NoError(tx.Commit())
	s.NoError(tx.Rollback())

	_, err = s.titles.Get(s.ctx, t.ID)
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestUnitOfWork_CommitErrorIsUnwrapped() {
	tx, err := s.uow.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit())

	err = tx.Commit()
	s.Require().Error(err)
	s.Equal(sql.ErrTxDone, err)
}
