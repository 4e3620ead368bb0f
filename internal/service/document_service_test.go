package service

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUploadAndDownload(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDocumentService(db, t.TempDir())
	ctx := context.Background()

	project := seedProject(t, db, "PRJ-001")

	doc, err := svc.Upload(ctx, UploadDocumentInput{
		FileName:    "boq-final.pdf",
		ContentType: "application/pdf",
		ProjectID:   project.ID.String(),
	}, strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "boq-final.pdf", doc.FileName)
	assert.EqualValues(t, len("pdf-bytes"), doc.SizeBytes)

	stored, file, err := svc.Open(ctx, doc.ID.String())
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
	assert.Equal(t, doc.ID, stored.ID)

	docs, total, err := svc.List(ctx, project.ID.String(), "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, docs, 1)
}

func TestDocumentUploadStripsPath(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	svc := NewDocumentService(db, dir)

	doc, err := svc.Upload(context.Background(), UploadDocumentInput{
		FileName: "../../etc/passwd",
	}, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", doc.FileName)
	assert.True(t, strings.HasPrefix(doc.StoredPath, dir))
}

func TestDocumentDeleteRemovesFile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDocumentService(db, t.TempDir())
	ctx := context.Background()

	doc, err := svc.Upload(ctx, UploadDocumentInput{FileName: "note.txt"}, strings.NewReader("hello"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doc.ID.String()))

	_, err = svc.Get(ctx, doc.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(doc.StoredPath)
	assert.True(t, os.IsNotExist(statErr))
}
