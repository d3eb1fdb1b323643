package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannels_SaveLoad(t *testing.T) {
	f := New(t.TempDir())

	want := ChannelConfig{Monitor: "906124525492641828", Text: "1034567890123456789"}
	require.NoError(t, f.SaveChannels(want))

	got, err := f.LoadChannels()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Ready())
}

func TestChannels_WritesIntegersAndNull(t *testing.T) {
	dir := t.TempDir()
	f := New(dir)

	require.NoError(t, f.SaveChannels(ChannelConfig{Monitor: "42"}))

	body, err := os.ReadFile(filepath.Join(dir, ChannelsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"monitor": 42, "text": null}`, string(body))
}

func TestChannels_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ChannelsFile), []byte(`{"monitor": null, "text": 7}`), 0o644))

	got, err := New(dir).LoadChannels()
	require.NoError(t, err)
	assert.Equal(t, ChannelConfig{Text: "7"}, got)
	assert.False(t, got.Ready())
}

func TestChannels_MissingFile(t *testing.T) {
	got, err := New(t.TempDir()).LoadChannels()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, ChannelConfig{}, got)
}

func TestChannels_RejectsNonNumericID(t *testing.T) {
	err := New(t.TempDir()).SaveChannels(ChannelConfig{Monitor: "voice"})
	assert.Error(t, err)
}

func TestMessageID(t *testing.T) {
	dir := t.TempDir()
	f := New(dir)

	_, err := f.LoadMessageID()
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, f.SaveMessageID("1122334455"))
	id, err := f.LoadMessageID()
	require.NoError(t, err)
	assert.Equal(t, "1122334455", id)

	require.NoError(t, f.SaveMessageID(""))
	id, err = f.LoadMessageID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, os.WriteFile(filepath.Join(dir, MessageIDFile), []byte("None\n"), 0o644))
	id, err = f.LoadMessageID()
	require.NoError(t, err)
	assert.Empty(t, id)
}
