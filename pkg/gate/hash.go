// Package gate provides feature gates: simple on/off flags, deterministic
// percentage rollouts and user-segment targeting.
//
// Percentage rollouts use consistent hashing to assign users to buckets
// (0-99) from their user ID, the flag name and a salt. The same user always
// resolves the same way for a given flag and percentage, distribution across
// buckets is even, and raising a rollout from 10% to 20% only adds users,
// never removes them.
package gate

import (
	"github.com/cespare/xxhash/v2"
)

// Bucket returns a deterministic bucket (0-99) for the given user and flag.
// The same userID + flag + salt combination always returns the same bucket.
// Returns -1 when there is no user context.
func Bucket(userID, flag, salt string) int {
	if userID == "" {
		return -1
	}
	key := userID + ":" + flag + ":" + salt
	hash := xxhash.Sum64String(key)
	return int(hash % 100)
}
