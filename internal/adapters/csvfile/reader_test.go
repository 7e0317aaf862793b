package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleigh-route-service/internal/domain"
)

func TestReadChildren(t *testing.T) {
	in := "\ufeffChild; Latitude ;Longitude;Wish;Naughty\n" +
		"1;52,52;13,405;3;0\n" +
		"\n" +
		"2;48.137;11.575;5;1\n" +
		"3;-33,8688;151,2093;2;true\n"

	got, err := ReadChildren("children.csv", strings.NewReader(in))
	require.NoError(t, err)

	want := []domain.Child{
		{ChildID: 1, Location: domain.Coordinates{Lat: 52.52, Lon: 13.405}, Wish: 3},
		{ChildID: 2, Location: domain.Coordinates{Lat: 48.137, Lon: 11.575}, Wish: 5, Naughty: true},
		{ChildID: 3, Location: domain.Coordinates{Lat: -33.8688, Lon: 151.2093}, Wish: 2, Naughty: true},
	}
	assert.Equal(t, want, got)
}

func TestReadChildrenErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		line   int
		column string
		is     error
	}{
		{
			name:   "missing column",
			in:     "child;latitude;longitude;wish\n1;0;0;1\n",
			line:   1,
			column: ColNaughty,
		},
		{
			name:   "bad latitude",
			in:     "child;latitude;longitude;wish;naughty\n1;0;0;1;0\n2;north;0;1;0\n",
			line:   3,
			column: ColLatitude,
		},
		{
			name: "child id zero",
			in:   "child;latitude;longitude;wish;naughty\n0;0;0;1;0\n",
			line: 2,
			is:   domain.ErrInvalidChild,
		},
		{
			name:   "short row",
			in:     "child;latitude;longitude;wish;naughty\n1;0;0\n",
			line:   2,
			column: ColWish,
		},
		{
			name:   "thousands group in wish",
			in:     "child;latitude;longitude;wish;naughty\n1;0;0;1.000;0\n",
			line:   2,
			column: ColWish,
		},
		{
			name:   "bad flag",
			in:     "child;latitude;longitude;wish;naughty\n1;0;0;1;maybe\n",
			line:   2,
			column: ColNaughty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadChildren("children.csv", strings.NewReader(tt.in))
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %v", err)
			assert.Equal(t, "children.csv", pe.File)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.column, pe.Column)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestReadArticles(t *testing.T) {
	in := "article;weight;volume\n0;0;0,5\n1;1,25;2\n2;3.0;1,5\n"

	got, err := ReadArticles("articles.csv", strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []domain.Article{
		{ArticleID: 0, Weight: 0, Volume: 0.5},
		{ArticleID: 1, Weight: 1.25, Volume: 2},
		{ArticleID: 2, Weight: 3, Volume: 1.5},
	}, got)

	_, err = ReadArticles("articles.csv", strings.NewReader("article;weight;volume\n1;-1;1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidArticle)
}

func TestReadSpecification(t *testing.T) {
	in := "meta data;value\n" +
		"maximum weight;500\n" +
		"Maximum Volume;1.000,5\n" +
		"speed (km/h);10000\n" +
		"time per stop (min);1,5\n" +
		"colour;red-ish\n"

	_, err := ReadSpecification("spec.csv", strings.NewReader(in))
	require.Error(t, err, "non-numeric values are rejected even for unknown labels")

	in = strings.Replace(in, "colour;red-ish\n", "colour;3\n", 1)
	spec, err := ReadSpecification("spec.csv", strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, domain.Specification{
		MaxWeight:   500,
		MaxVolume:   1000.5,
		SpeedKmh:    10000,
		TimePerStop: 90 * time.Second,
	}, spec)
}

func TestReadSpecificationErrors(t *testing.T) {
	_, err := ReadSpecification("spec.csv", strings.NewReader("meta data;value\nmaximum weight;1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidSpecification)

	_, err = ReadSpecification("spec.csv", strings.NewReader("meta data;value\nspeed (km/h);1\nspeed (km/h);2\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)

	_, err = ReadSpecification("spec.csv", strings.NewReader(""))
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,5", 1.5},
		{"1.5", 1.5},
		{" 42 ", 42},
		{"-0,25", -0.25},
		{"1.234,5", 1234.5},
	}
	for _, tt := range tests {
		got, err := ParseDecimal(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, tt.in)
	}

	for _, bad := range []string{"", "abc", "NaN", "1,2,3"} {
		_, err := ParseDecimal(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"7", 7},
		{" 12 ", 12},
		{"3,0", 3},
		{"1.000,0", 1000},
	}
	for _, tt := range tests {
		got, err := parseInt(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"1.000", "3.0", "2,5", "x"} {
		_, err := parseInt(bad)
		assert.Error(t, err, bad)
	}
}

func TestInputRepositoryReadsFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	repo := NewInputRepository(
		write("children.csv", "child;latitude;longitude;wish;naughty\n1;10;20;1;0\n"),
		write("articles.csv", "article;weight;volume\n0;0;1\n1;2;3\n"),
		write("spec.csv", "meta data;value\nmaximum weight;10\nmaximum volume;10\nspeed (km/h);100\ntime per stop (min);2\n"),
	)

	ctx := t.Context()
	children, err := repo.ListChildren(ctx)
	require.NoError(t, err)
	assert.Len(t, children, 1)

	articles, err := repo.ListArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 2)

	spec, err := repo.GetSpecification(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, spec.TimePerStop)

	_, err = NewInputRepository(filepath.Join(dir, "nope.csv"), "", "").ListChildren(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
