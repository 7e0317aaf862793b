package csvfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleigh-route-service/internal/domain"
)

func TestWriteRoute(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRoute(&buf, []domain.RouteEntry{
		domain.ReloadEntry(0, 2),
		domain.ReloadEntry(3, 25),
		domain.DeliveryEntry(12),
		domain.DeliveryEntry(7),
	})
	require.NoError(t, err)

	assert.Equal(t, "stop;article;pieces\n0;0;2\n0;3;25\n12;;\n7;;\n", buf.String())
}

func TestWriteRouteRejectsMalformedRows(t *testing.T) {
	var buf bytes.Buffer
	bad := domain.RouteEntry{Stop: 0}

	err := WriteRoute(&buf, []domain.RouteEntry{domain.DeliveryEntry(1), bad})
	assert.ErrorIs(t, err, domain.ErrInvalidRouteEntry)
}

func TestSaveRouteCreatesDirectories(t *testing.T) {
	at := time.Date(2026, 12, 24, 18, 30, 0, 0, time.UTC)
	path := DefaultRoutePath(filepath.Join(t.TempDir(), "output"), at)
	assert.Equal(t, "route_20261224_183000.csv", filepath.Base(path))

	require.NoError(t, SaveRoute(path, []domain.RouteEntry{domain.DeliveryEntry(1)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stop;article;pieces\n1;;\n", string(data))
}
