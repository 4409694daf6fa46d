package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FormFeedPagination(t *testing.T) {
	path := writeDoc(t, "page one\fpage two\fpage three")
	renderer := New()

	total, err := renderer.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestLoad_FixedLinesPagination(t *testing.T) {
	lines := make([]string, 85)
	for i := range lines {
		lines[i] = "line"
	}
	path := writeDoc(t, strings.Join(lines, "\n"))
	renderer := NewWithLinesPerPage(40)

	total, err := renderer.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestLoad_EmptyFileIsOnePage(t *testing.T) {
	path := writeDoc(t, "")
	renderer := New()

	total, err := renderer.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestLoad_MissingFile(t *testing.T) {
	renderer := New()

	_, err := renderer.Load(context.Background(), "/nope/missing.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestRenderPage_WordFragments(t *testing.T) {
	path := writeDoc(t, "alpha beta\ngamma\fsecond page")
	renderer := New()

	page, err := renderer.RenderPage(context.Background(), path, 1, 80)

	require.NoError(t, err)
	require.Len(t, page.Fragments, 3)
	assert.Equal(t, domain.Fragment{Text: "alpha", Line: 0}, page.Fragments[0])
	assert.Equal(t, domain.Fragment{Text: "beta", Line: 0}, page.Fragments[1])
	assert.Equal(t, domain.Fragment{Text: "gamma", Line: 1}, page.Fragments[2])
}

func TestRenderPage_SecondFormFeedPage(t *testing.T) {
	path := writeDoc(t, "first\fsecond page here")
	renderer := New()

	page, err := renderer.RenderPage(context.Background(), path, 2, 80)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, "second page here", page.Text())
}

func TestRenderPage_OutOfRange(t *testing.T) {
	path := writeDoc(t, "only page")
	renderer := New()

	_, err := renderer.RenderPage(context.Background(), path, 2, 80)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"text/plain"}, New().SupportedMIMETypes())
}
