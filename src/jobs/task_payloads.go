package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeImportBatch = "import:materialize"

type ImportBatchPayload struct {
	BatchID string `json:"batch_id"`
}

func NewImportBatchTask(batchID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImportBatchPayload{BatchID: batchID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImportBatch, payload), nil
}
