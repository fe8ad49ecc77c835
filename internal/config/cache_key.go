package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session (JTI).
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// TestSnapshotKey returns the cache key for a user's exam session snapshot.
// The snapshot mirrors the in-memory session so a page reload can resume.
func (r *CacheKeyStruct) TestSnapshotKey(userID int) string {
	return fmt.Sprintf("user:%d:test_state", userID)
}

var CacheKey = NewCacheKeyStruct()
