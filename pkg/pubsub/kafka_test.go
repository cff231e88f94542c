package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelToTopicAndKey(t *testing.T) {
	tests := []struct {
		channel   string
		wantTopic string
		wantKey   string
		wantErr   bool
	}{
		{"content:post:42:events", "content-post-events", "42", false},
		{"content:comment:7:events", "content-comment-events", "7", false},
		{"content:follow:1:events", "content-follow-events", "1", false},
		{"bogus", "", "", true},
		{"other:post:42:events", "", "", true},
		{"content:post:42:other", "", "", true},
	}

	for _, tt := range tests {
		topic, key, err := channelToTopicAndKey(tt.channel)
		if tt.wantErr {
			assert.Error(t, err, tt.channel)
			continue
		}
		assert.NoError(t, err, tt.channel)
		assert.Equal(t, tt.wantTopic, topic)
		assert.Equal(t, tt.wantKey, key)
	}
}

func TestPatternToTopic(t *testing.T) {
	topic, err := patternToTopic(ContentPattern(EntityPost))
	assert.NoError(t, err)
	assert.Equal(t, "content-post-events", topic)
}

func TestContentChannel(t *testing.T) {
	assert.Equal(t, "content:post:42:events", ContentChannel(EntityPost, "42"))
	assert.Equal(t, "content:follow:*:events", ContentPattern(EntityFollow))
}
