package testutil

import (
	"bytes"
	"io"
	"strings"

	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// PNGHeader is enough of a PNG file for content sniffing.
var PNGHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// CreateTestCategory creates a valid active category.
func CreateTestCategory(name string) *catalog.Category {
	c, err := catalog.NewCategory(name, name+" titles", true)
	if err != nil {
		panic(err)
	}
	return c
}

// CreateTestGenre creates a valid active genre.
func CreateTestGenre(name string) *catalog.Genre {
	g, err := catalog.NewGenre(name, true)
	if err != nil {
		panic(err)
	}
	return g
}

// CreateTestCastMember creates a valid actor.
func CreateTestCastMember(name string) *catalog.CastMember {
	m, err := catalog.NewCastMember(name, catalog.CastMemberActor)
	if err != nil {
		panic(err)
	}
	return m
}

// CreateTitleCommand returns a valid create command without relations or media.
func CreateTitleCommand(name string) title.CreateTitleCommand {
	return title.CreateTitleCommand{
		Title:        name,
		Description:  "A test title called " + name,
		YearLaunched: 2020,
		Opened:       true,
		Duration:     90,
		Rating:       catalog.RatingL,
	}
}

// MediaInput returns a named payload.
func MediaInput(name, content string) *title.MediaInput {
	return &title.MediaInput{Name: name, Content: strings.NewReader(content)}
}

// UnnamedPNG returns a payload without a file name whose content is a PNG.
func UnnamedPNG() *title.MediaInput {
	return &title.MediaInput{Content: io.MultiReader(bytes.NewReader(PNGHeader), strings.NewReader("pixels"))}
}

// FailingReader fails every read with Err.
type FailingReader struct {
	Err error
}

func (r FailingReader) Read([]byte) (int, error) {
	return 0, r.Err
}
