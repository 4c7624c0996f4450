package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("EST", -5*3600))
	key := SnapshotKey("user_42", at)

	assert.True(t, strings.HasPrefix(key, "snapshots/user_42/20260304T100607Z-"), key)
	assert.True(t, strings.HasSuffix(key, ".json"), key)
	assert.NotEqual(t, key, SnapshotKey("user_42", at), "keys are unique per upload")
}

func TestUserPrefixIsolatesUsers(t *testing.T) {
	assert.Equal(t, "snapshots/user_1/", userPrefix("user_1"))
	assert.False(t, strings.HasPrefix(SnapshotKey("user_10", time.Now()), userPrefix("user_1")))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}
