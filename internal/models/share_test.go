package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireAtFor(t *testing.T) {
	now := time.UnixMilli(0)

	cases := []struct {
		unit  string
		value int
		want  int64
	}{
		{"hour", 1, 3600000},
		{"hour", 2, 7200000},
		{"day", 1, 86400000},
		{"week", 1, 604800000},
		{"month", 1, 2592000000},
		{"year", 1, 31536000000},
		{"day", 3, 3 * 86400000},
	}

	for _, tc := range cases {
		got, err := ExpireAtFor(now, tc.unit, tc.value)
		require.NoError(t, err, tc.unit)
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got, "%d %s", tc.value, tc.unit)
	}
}

func TestExpireAtForForever(t *testing.T) {
	got, err := ExpireAtFor(time.Now(), UnitForever, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExpireAtForInvalid(t *testing.T) {
	_, err := ExpireAtFor(time.Now(), "fortnight", 1)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ExpireAtFor(time.Now(), "hour", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ExpireAtFor(time.Now(), "hour", -2)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestIsResolvable(t *testing.T) {
	expireAt := int64(7200000)

	record := &ShareRecord{Active: true, ExpireAt: &expireAt}
	assert.True(t, record.IsResolvable(time.UnixMilli(7199999)))
	assert.False(t, record.IsResolvable(time.UnixMilli(7200001)))

	// Inactive records are never resolvable, expired or not.
	record = &ShareRecord{Active: false}
	assert.False(t, record.IsResolvable(time.UnixMilli(0)))

	// No expiry means resolvable forever while active.
	record = &ShareRecord{Active: true}
	assert.True(t, record.IsResolvable(time.UnixMilli(1<<50)))
}

func TestFileName(t *testing.T) {
	record := &ShareRecord{FullPath: "myrepo/docs/notes.txt"}
	assert.Equal(t, "notes.txt", record.FileName())

	record = &ShareRecord{FullPath: "myrepo"}
	assert.Equal(t, "myrepo", record.FileName())
}

func TestSplitVirtualPath(t *testing.T) {
	repo, rel := SplitVirtualPath("myrepo/docs/notes.txt")
	assert.Equal(t, "myrepo", repo)
	assert.Equal(t, "docs/notes.txt", rel)

	repo, rel = SplitVirtualPath("/myrepo/")
	assert.Equal(t, "myrepo", repo)
	assert.Equal(t, "", rel)

	repo, rel = SplitVirtualPath("//myrepo//file.md")
	assert.Equal(t, "myrepo", repo)
	assert.Equal(t, "file.md", rel)

	repo, rel = SplitVirtualPath("/")
	assert.Equal(t, "", repo)
	assert.Equal(t, "", rel)
}
