package utils

import "github.com/cespare/xxhash/v2"

// GetTopHash returns the most significant 8 bits of the xxHash64 checksum of
// the key. Sharded stores use it to pick a shard, so equal keys always land
// in the same shard.
func GetTopHash(key string) uint8 {
	hash := xxhash.Sum64String(key)
	return uint8(hash >> 56)
}
