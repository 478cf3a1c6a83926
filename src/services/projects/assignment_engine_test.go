package projects

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNoTaskWaiting(t *testing.T) {
	assert.True(t, noTaskWaiting(mongo.ErrNoDocuments))
	assert.True(t, noTaskWaiting(fmt.Errorf("claim: %w", mongo.ErrNoDocuments)))

	// real database failures must surface, not read as an empty queue
	assert.False(t, noTaskWaiting(errors.New("connection reset by peer")))
	assert.False(t, noTaskWaiting(nil))
}
