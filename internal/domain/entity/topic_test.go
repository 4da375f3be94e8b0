package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic_Validate(t *testing.T) {
	tests := []struct {
		name      string
		topicName string
		wantErr   bool
		wantName  string
	}{
		{"valid", "Technology", false, "Technology"},
		{"trimmed", "  Sports  ", false, "Sports"},
		{"blank", "   ", true, ""},
		{"max length", strings.Repeat("a", MaxTopicNameLength), false, strings.Repeat("a", MaxTopicNameLength)},
		{"too long", strings.Repeat("a", MaxTopicNameLength+1), true, strings.Repeat("a", MaxTopicNameLength+1)},
		{"multibyte counted as runes", strings.Repeat("é", MaxTopicNameLength), false, strings.Repeat("é", MaxTopicNameLength)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic := &Topic{Name: tt.topicName}
			err := topic.Validate()
			if tt.wantErr {
				var v *ValidationErrors
				require.True(t, errors.As(err, &v))
				assert.Equal(t, []string{"name"}, v.Fields())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, topic.Name)
		})
	}
}
