package models

import "fmt"

// Key patterns for cached admin state
const (
	DashboardSnapshotKey = "dashboard:snapshot"
	BadgeSeenKeyPattern  = "badges:lastSeen:%s" // badges:lastSeen:<section>
)

type RedisKeyBuilder struct{}

func NewRedisKeyBuilder() *RedisKeyBuilder {
	return &RedisKeyBuilder{}
}

func (rkb *RedisKeyBuilder) DashboardKey() string {
	return DashboardSnapshotKey
}

func (rkb *RedisKeyBuilder) BadgeSeenKey(section string) string {
	return fmt.Sprintf(BadgeSeenKeyPattern, section)
}
