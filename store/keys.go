package store

import (
	"fmt"
	"strings"
)

const (
	// AllUsersKey is the set of every user currently tracking at least one
	// drama.
	AllUsersKey = "users"

	keyDelimiter   = ":"
	metadataSuffix = "metadata"
)

// RedisKeyParser owns the key layout. Four key families exist:
// `users`, `<userId>`, `<dramaId>` and `<dramaId>:metadata`.
type RedisKeyParser struct {
	delimiter string
}

// ValidateUserId rejects user ids that would collide with the key layout: a
// delimiter would make the id ambiguous with a metadata key, and a user named
// after the global set key would shadow it.
func (r RedisKeyParser) ValidateUserId(id string) bool {
	return id != "" && id != AllUsersKey && !strings.Contains(id, r.delimiter)
}

// ValidateDramaId is looser than ValidateUserId because RSS drama ids are
// feed URLs and legitimately contain the delimiter. Only ids that collide
// with the global set key or with a metadata key are rejected.
func (r RedisKeyParser) ValidateDramaId(id string) bool {
	return id != "" && id != AllUsersKey &&
		!strings.HasSuffix(id, r.delimiter+metadataSuffix)
}

func (r RedisKeyParser) UserKey(userID string) string {
	return userID
}

func (r RedisKeyParser) DramaKey(dramaID string) string {
	return dramaID
}

func (r RedisKeyParser) MetadataKey(dramaID string) string {
	return fmt.Sprintf("%s%s%s", dramaID, r.delimiter, metadataSuffix)
}
