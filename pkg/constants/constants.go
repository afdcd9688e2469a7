package constants

const (
	CHANNEL_SIZE       = 256 // domain event channel buffer
	REDIS_TIMEOUT      = 5   // cache entry lifetime (minutes)
	DEFAULT_PAGE       = 1
	DEFAULT_POST_LIMIT = 10
	DEFAULT_USER_LIMIT = 50
	DEFAULT_MOOD_LIMIT = 10
	DEFAULT_MOOD       = "neutral"
)

// Cache key prefixes.
const (
	CACHE_USER_INFO         = "user_info_"
	CACHE_USER_BOOKING_LIST = "booking_list_"
	CACHE_LIVE_SESSION_LIST = "live_session_list_"
)
