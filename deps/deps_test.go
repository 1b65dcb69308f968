package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMissing(t *testing.T) {
	err := Check("ytcut-definitely-missing", FfmpegInstallURL)

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "ytcut-definitely-missing", depErr.Name)
	assert.Equal(t, "ytcut-definitely-missing not found. Install from: https://ffmpeg.org/download.html", err.Error())
}

func TestCheckAll(t *testing.T) {
	statuses := CheckAll("ytcut-definitely-missing")
	require.Len(t, statuses, 2)

	assert.Equal(t, "ffmpeg", statuses[0].Name)
	assert.True(t, statuses[0].Required)
	assert.Error(t, statuses[0].Err)

	assert.Equal(t, "mpv", statuses[1].Name)
	assert.False(t, statuses[1].Required)
}
