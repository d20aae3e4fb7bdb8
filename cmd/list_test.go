package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"postindex/pkg/logging"
	"postindex/pkg/models"
	"postindex/pkg/services"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLister() *services.Lister {
	return &services.Lister{
		Source: &services.FSSource{FS: fstest.MapFS{
			"content/post/old/index.md": {Data: []byte("---\ntitle: Old\ndate: 2020-01-01\n---\n")},
			"content/post/new/index.md": {Data: []byte("---\ntitle: New\ndate: 2024-01-01\n---\n")},
		}},
		Collection: models.Collection{Name: "post", Folder: "content/post"},
	}
}

func newTestCommand(out *bytes.Buffer) *cobra.Command {
	logger = logging.NewWithWriter(&bytes.Buffer{}, "error")
	c := &cobra.Command{}
	c.SetOut(out)
	c.SetContext(context.Background())
	return c
}

func TestRunListOrdered(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runList(newTestCommand(&out), testLister(), false, true))

	var posts []models.PostSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Link)
	assert.Equal(t, "old", posts[1].Link)
}

func TestRunListSlugs(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runList(newTestCommand(&out), testLister(), true, true))
	assert.JSONEq(t, `{"paths":["new","old"]}`, out.String())
}

func TestRunListFailure(t *testing.T) {
	lister := testLister()
	lister.Source.(*services.FSSource).FS.(fstest.MapFS)["content/post/bad/index.md"] = &fstest.MapFile{Data: []byte("---\ndate: soon\n---\n")}

	var out bytes.Buffer
	err := runList(newTestCommand(&out), lister, false, true)
	require.Error(t, err)
	assert.Empty(t, out.String())
}
