package cache

import "fmt"

func ProviderStatusKey() string {
	return "analyzer:provider_status"
}

func RateLimitKey(caller string) string {
	return fmt.Sprintf("analyzer:ratelimit:%s", caller)
}
