package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeFilename(t *testing.T) {
	require.Equal(t, "案件A", SafeFilename("案件A", "プロジェクト"))
	require.Equal(t, "Project 1_v2", SafeFilename("Project 1_v2", "プロジェクト"))
	require.Equal(t, "ab", SafeFilename(`a/\:*?"<>|b`, "プロジェクト"))
	require.Equal(t, "プロジェクト", SafeFilename("/////", "プロジェクト"))
	require.Equal(t, "プロジェクト", SafeFilename("", "プロジェクト"))
}
