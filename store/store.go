// Package store persists the lobby's channel selection and the ID of the
// status message as two small files in a data directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	ChannelsFile  = "channels.json"
	MessageIDFile = "lobby_message_id.txt"
)

// ChannelConfig holds the monitored voice channel and the text channel the
// status message is posted to. Empty means unset.
type ChannelConfig struct {
	Monitor string
	Text    string
}

// Ready reports whether both channels are set.
func (c ChannelConfig) Ready() bool {
	return c.Monitor != "" && c.Text != ""
}

// channelsFile is the on-disk shape: snowflakes as JSON integers, null when unset.
type channelsFile struct {
	Monitor *uint64 `json:"monitor"`
	Text    *uint64 `json:"text"`
}

type Files struct {
	Dir string
}

func New(dir string) *Files {
	return &Files{Dir: dir}
}

func (f *Files) path(name string) string {
	return filepath.Join(f.Dir, name)
}

func (f *Files) SaveChannels(c ChannelConfig) error {
	var out channelsFile
	var err error
	if out.Monitor, err = toSnowflake(c.Monitor); err != nil {
		return fmt.Errorf("cannot encode monitor channel: %w", err)
	}
	if out.Text, err = toSnowflake(c.Text); err != nil {
		return fmt.Errorf("cannot encode text channel: %w", err)
	}

	body, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("cannot marshal channels: %w", err)
	}
	if err := os.WriteFile(f.path(ChannelsFile), body, 0o644); err != nil {
		return fmt.Errorf("cannot write channels: %w", err)
	}
	return nil
}

// LoadChannels returns the saved channels. A missing file yields an unset
// config and an error wrapping fs.ErrNotExist.
func (f *Files) LoadChannels() (ChannelConfig, error) {
	body, err := os.ReadFile(f.path(ChannelsFile))
	if err != nil {
		return ChannelConfig{}, fmt.Errorf("cannot load channels: %w", err)
	}

	var in channelsFile
	if err := json.Unmarshal(body, &in); err != nil {
		return ChannelConfig{}, fmt.Errorf("cannot unmarshal channels: %w", err)
	}
	return ChannelConfig{
		Monitor: fromSnowflake(in.Monitor),
		Text:    fromSnowflake(in.Text),
	}, nil
}

// SaveMessageID writes id, or an empty file when id is empty.
func (f *Files) SaveMessageID(id string) error {
	if err := os.WriteFile(f.path(MessageIDFile), []byte(id), 0o644); err != nil {
		return fmt.Errorf("cannot write message id: %w", err)
	}
	return nil
}

// LoadMessageID returns the saved status message ID. An empty or
// non-numeric file is treated as unset without error.
func (f *Files) LoadMessageID() (string, error) {
	body, err := os.ReadFile(f.path(MessageIDFile))
	if err != nil {
		return "", fmt.Errorf("cannot load message id: %w", err)
	}

	id := strings.TrimSpace(string(body))
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", nil
	}
	return id, nil
}

func toSnowflake(id string) (*uint64, error) {
	if id == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fromSnowflake(v *uint64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(*v, 10)
}
