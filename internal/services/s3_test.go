package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImageKey(t *testing.T) {
	key := imageKey("Photo.JPG", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(key, "products/images/2024/03/09/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
}

func TestImageTypes(t *testing.T) {
	assert.True(t, isValidImageType("IMAGE/PNG"))
	assert.False(t, isValidImageType("application/pdf"))
	assert.Equal(t, "image/webp", contentTypeFromExtension("a.webp"))
	assert.Equal(t, "application/octet-stream", contentTypeFromExtension("a.txt"))
}
