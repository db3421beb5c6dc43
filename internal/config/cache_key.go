package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuestionFeedKey returns the cache key for the public question feed payload.
func (r *CacheKeyStruct) QuestionFeedKey() string {
	return "questions:feed"
}

var CacheKey = NewCacheKeyStruct()
