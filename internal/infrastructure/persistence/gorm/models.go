package gorm

import (
	"time"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// BaseModel provides common fields for aggregate models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// MediaColumns stores one media slot inline in the titles table.
// An empty path means the slot is empty.
type MediaColumns struct {
	Path        string `gorm:"size:1024"`
	EncodedPath string `gorm:"size:1024"`
	Status      string `gorm:"size:16"`
}

// TitleModel represents a title in the database
type TitleModel struct {
	BaseModel
	Title        string       `gorm:"size:255;not null;index"`
	Description  string       `gorm:"type:text;not null"`
	YearLaunched int          `gorm:"not null;default:0"`
	Opened       bool         `gorm:"not null;default:false"`
	Published    bool         `gorm:"not null;default:false"`
	Duration     int          `gorm:"not null;default:0"`
	Rating       string       `gorm:"size:3;not null"`
	Banner       MediaColumns `gorm:"embedded;embeddedPrefix:banner_"`
	Thumb        MediaColumns `gorm:"embedded;embeddedPrefix:thumb_"`
	ThumbHalf    MediaColumns `gorm:"embedded;embeddedPrefix:thumb_half_"`
	Video        MediaColumns `gorm:"embedded;embeddedPrefix:video_"`
	Trailer      MediaColumns `gorm:"embedded;embeddedPrefix:trailer_"`

	Categories  []TitleCategoryModel   `gorm:"foreignKey:TitleID"`
	Genres      []TitleGenreModel      `gorm:"foreignKey:TitleID"`
	CastMembers []TitleCastMemberModel `gorm:"foreignKey:TitleID"`
}

// TableName returns the table name
func (TitleModel) TableName() string { return "titles" }

// TitleCategoryModel links a title to a category
type TitleCategoryModel struct {
	TitleID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name
func (TitleCategoryModel) TableName() string { return "title_categories" }

// TitleGenreModel links a title to a genre
type TitleGenreModel struct {
	TitleID uuid.UUID `gorm:"type:uuid;primaryKey"`
	GenreID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name
func (TitleGenreModel) TableName() string { return "title_genres" }

// TitleCastMemberModel links a title to a cast member
type TitleCastMemberModel struct {
	TitleID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CastMemberID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name
func (TitleCastMemberModel) TableName() string { return "title_cast_members" }

// CategoryModel represents a category in the database
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null;index"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name
func (CategoryModel) TableName() string { return "categories" }

// GenreModel represents a genre in the database
type GenreModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null;index"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name
func (GenreModel) TableName() string { return "genres" }

// CastMemberModel represents a cast member in the database
type CastMemberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null;index"`
	Type      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name
func (CastMemberModel) TableName() string { return "cast_members" }

// Models lists every model owned by the catalog schema
func Models() []interface{} {
	return []interface{}{
		&TitleModel{},
		&TitleCategoryModel{},
		&TitleGenreModel{},
		&TitleCastMemberModel{},
		&CategoryModel{},
		&GenreModel{},
		&CastMemberModel{},
	}
}

func mediaColumns(m *catalog.Media) MediaColumns {
	if m == nil {
		return MediaColumns{}
	}
	return MediaColumns{
		Path:        m.Path(),
		EncodedPath: m.EncodedPath(),
		Status:      string(m.Status()),
	}
}

func (c MediaColumns) toDomain() *catalog.Media {
	if c.Path == "" {
		return nil
	}
	return catalog.RestoreMedia(c.Path, c.EncodedPath, catalog.MediaStatus(c.Status))
}

// FromDomain converts a domain Title to a TitleModel
func (m *TitleModel) FromDomain(t *catalog.Title) {
	m.ID = t.ID
	m.Version = t.Version
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.Title = t.Title()
	m.Description = t.Description()
	m.YearLaunched = t.YearLaunched()
	m.Opened = t.Opened()
	m.Published = t.Published()
	m.Duration = t.Duration()
	m.Rating = string(t.Rating())
	m.Banner = mediaColumns(t.Media(catalog.SlotBanner))
	m.Thumb = mediaColumns(t.Media(catalog.SlotThumb))
	m.ThumbHalf = mediaColumns(t.Media(catalog.SlotThumbHalf))
	m.Video = mediaColumns(t.Media(catalog.SlotVideo))
	m.Trailer = mediaColumns(t.Media(catalog.SlotTrailer))

	m.Categories = nil
	for _, id := range t.Categories().Slice() {
		m.Categories = append(m.Categories, TitleCategoryModel{TitleID: t.ID, CategoryID: id})
	}
	m.Genres = nil
	for _, id := range t.Genres().Slice() {
		m.Genres = append(m.Genres, TitleGenreModel{TitleID: t.ID, GenreID: id})
	}
	m.CastMembers = nil
	for _, id := range t.CastMembers().Slice() {
		m.CastMembers = append(m.CastMembers, TitleCastMemberModel{TitleID: t.ID, CastMemberID: id})
	}
}

// ToDomain converts a TitleModel to a domain Title
func (m *TitleModel) ToDomain() *catalog.Title {
	base := catalog.BaseAggregate{
		ID:        m.ID,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	d := catalog.Descriptive{
		Title:        m.Title,
		Description:  m.Description,
		YearLaunched: m.YearLaunched,
		Opened:       m.Opened,
		Published:    m.Published,
		Duration:     m.Duration,
		Rating:       catalog.Rating(m.Rating),
	}
	slots := map[catalog.SlotKind]*catalog.Media{
		catalog.SlotBanner:    m.Banner.toDomain(),
		catalog.SlotThumb:     m.Thumb.toDomain(),
		catalog.SlotThumbHalf: m.ThumbHalf.toDomain(),
		catalog.SlotVideo:     m.Video.toDomain(),
		catalog.SlotTrailer:   m.Trailer.toDomain(),
	}

	categories := make([]uuid.UUID, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = c.CategoryID
	}
	genres := make([]uuid.UUID, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = g.GenreID
	}
	castMembers := make([]uuid.UUID, len(m.CastMembers))
	for i, c := range m.CastMembers {
		castMembers[i] = c.CastMemberID
	}

	return catalog.RestoreTitle(base, d, slots, categories, genres, castMembers)
}

// FromDomain converts a domain Category to a CategoryModel
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.ID = c.ID
	m.Name = c.Name
	m.Description = c.Description
	m.IsActive = c.IsActive
	m.CreatedAt = c.CreatedAt
}

// ToDomain converts a CategoryModel to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts a domain Genre to a GenreModel
func (m *GenreModel) FromDomain(g *catalog.Genre) {
	m.ID = g.ID
	m.Name = g.Name
	m.IsActive = g.IsActive
	m.CreatedAt = g.CreatedAt
}

// ToDomain converts a GenreModel to a domain Genre
func (m *GenreModel) ToDomain() *catalog.Genre {
	return &catalog.Genre{
		ID:        m.ID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts a domain CastMember to a CastMemberModel
func (m *CastMemberModel) FromDomain(c *catalog.CastMember) {
	m.ID = c.ID
	m.Name = c.Name
	m.Type = string(c.Type)
	m.CreatedAt = c.CreatedAt
}

// ToDomain converts a CastMemberModel to a domain CastMember
func (m *CastMemberModel) ToDomain() *catalog.CastMember {
	return &catalog.CastMember{
		ID:        m.ID,
		Name:      m.Name,
		Type:      catalog.CastMemberType(m.Type),
		CreatedAt: m.CreatedAt,
	}
}
