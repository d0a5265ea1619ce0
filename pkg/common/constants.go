package common

const (
	// RedisStreamConvictionResults carries one entry per scored purchase group.
	RedisStreamConvictionResults = "conviction.results"

	// RedisStreamInsiderFilings carries one entry per Form 4 filing to ingest.
	RedisStreamInsiderFilings = "insider.filings"

	RedisStreamGroup        = "conviction-scoring"
	RedisStreamConsumer     = "scoring-service"
	RedisStreamPayloadField = "payload"
)
