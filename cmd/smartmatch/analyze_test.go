package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCommand_Degraded(t *testing.T) {
	resume := writeTempFile(t, "resume.txt",
		"Python AWS Docker\nPython AWS Docker\nPython AWS Docker")
	job := writeTempFile(t, "job.txt",
		"Python AWS Kubernetes\nPython AWS Kubernetes\nPython AWS Kubernetes")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"analyze", "--resume", resume, "--job", job})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Match: 67%")
	assert.Contains(t, out.String(), "Missing keywords: Kubernetes")
}

func TestAnalyzeCommand_MissingJobSource(t *testing.T) {
	resume := writeTempFile(t, "resume.txt", "resume")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"analyze", "--resume", resume})

	assert.Error(t, rootCmd.Execute())
}
