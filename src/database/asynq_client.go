package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// AsynqClient enqueues import-batch materialization jobs. It stays nil when
// Redis is absent; ingest then materializes batches inline instead.
var AsynqClient *asynq.Client

// InitAsynq เปิด client เฉพาะเมื่อ InitRedis สำเร็จแล้ว
func InitAsynq() {
	if RedisClient == nil || RedisURI == "" {
		log.Println("⚠️ Redis not available. Import batches will be materialized inline.")
		return
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: RedisURI})
	log.Println("✅ Asynq Client initialized successfully")
}
