package jobs

import (
	"log"

	"Backend-Dhriti-AI/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the background task server. It blocks, so main runs it
// in its own goroutine. Skipped entirely when Redis is not configured.
func StartWorker() {
	if database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Background worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImportBatch, HandleImportBatchTask)

	log.Println("✅ Background worker started")
	if err := srv.Run(mux); err != nil {
		log.Println("❌ Background worker stopped:", err)
	}
}
