package qc

import (
	"testing"

	"Backend-Dhriti-AI/src/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from   models.TaskStatus
		action string
		next   models.TaskStatus
		ok     bool
	}{
		{models.TaskStatusSubmitted, ActionAccept, models.TaskStatusQCAccepted, true},
		{models.TaskStatusQCPending, ActionAccept, models.TaskStatusQCAccepted, true},
		{models.TaskStatusSubmitted, ActionReject, models.TaskStatusQCRejected, true},
		{models.TaskStatusQCPending, ActionReject, models.TaskStatusQCRejected, true},
		{models.TaskStatusQCRejected, ActionRework, models.TaskStatusRework, true},

		{models.TaskStatusNew, ActionAccept, models.TaskStatusNew, false},
		{models.TaskStatusNew, ActionReject, models.TaskStatusNew, false},
		{models.TaskStatusQCAccepted, ActionAccept, models.TaskStatusQCAccepted, false},
		{models.TaskStatusQCAccepted, ActionReject, models.TaskStatusQCAccepted, false},
		{models.TaskStatusSubmitted, ActionRework, models.TaskStatusSubmitted, false},
		{models.TaskStatusRework, ActionRework, models.TaskStatusRework, false},
		{models.TaskStatusDiscarded, ActionAccept, models.TaskStatusDiscarded, false},
		{models.TaskStatusSubmitted, "promote", models.TaskStatusSubmitted, false},
	}

	for _, c := range cases {
		next, ok := CanTransition(c.from, c.action)
		assert.Equal(t, c.ok, ok, "%s + %s", c.from, c.action)
		assert.Equal(t, c.next, next, "%s + %s", c.from, c.action)
	}
}
