package filestorage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(FolderResume, "app-1", "My CV.PDF")
	require.True(t, strings.HasPrefix(key, "resume/app-1/"))
	require.True(t, strings.HasSuffix(key, ".pdf"))
	require.NotEqual(t, key, ObjectKey(FolderResume, "app-1", "My CV.PDF"))
}
