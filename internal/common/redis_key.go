package common

import "fmt"

func RedisKeyUser(id string) string {
	return fmt.Sprintf("cache:user:%s", id)
}
