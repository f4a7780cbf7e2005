package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeroom/models"
)

func TestTaskLifecycle(t *testing.T) {
	s := testStores(t, "teacher", "student")
	svc := NewTaskService(s)

	due := time.Date(2025, 6, 8, 18, 0, 0, 0, time.UTC)
	task, err := svc.Create("teacher", "student", "essay", "two pages", &due)
	require.NoError(t, err)
	assert.Equal(t, models.TaskOpen, task.Status)
	assert.Equal(t, "student", task.AssigneeID)

	_, err = svc.Submit(task.ID, "teacher")
	assert.Equal(t, KindForbidden, KindOf(err), "only the assignee submits")

	_, err = svc.Grade(task.ID, "teacher", "A")
	assert.Equal(t, KindConflict, KindOf(err), "cannot grade an open task")

	submitted, err := svc.Submit(task.ID, "student")
	require.NoError(t, err)
	assert.Equal(t, models.TaskSubmitted, submitted.Status)

	_, err = svc.Submit(task.ID, "student")
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = svc.Grade(task.ID, "student", "A")
	assert.Equal(t, KindForbidden, KindOf(err), "only the owner grades")

	graded, err := svc.Grade(task.ID, "teacher", "A")
	require.NoError(t, err)
	assert.Equal(t, models.TaskGraded, graded.Status)
	assert.Equal(t, "A", graded.Grade)
}

func TestTaskCreateValidation(t *testing.T) {
	s := testStores(t, "teacher")
	svc := NewTaskService(s)

	_, err := svc.Create("teacher", "", "", "", nil)
	assert.Equal(t, KindInvalid, KindOf(err))

	_, err = svc.Create("teacher", "ghost", "essay", "", nil)
	assert.Equal(t, KindNotFound, KindOf(err))

	// no assignee means self-assigned
	task, err := svc.Create("teacher", "", "read chapter 3", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "teacher", task.AssigneeID)
}

func TestTaskUpdateAndDelete(t *testing.T) {
	s := testStores(t, "teacher", "student")
	svc := NewTaskService(s)

	task, err := svc.Create("teacher", "student", "essay", "", nil)
	require.NoError(t, err)

	_, err = svc.Update(task.ID, "student", "hacked", "", nil)
	assert.Equal(t, KindForbidden, KindOf(err))

	updated, err := svc.Update(task.ID, "teacher", "short essay", "one page", nil)
	require.NoError(t, err)
	assert.Equal(t, "short essay", updated.Title)
	assert.Equal(t, "one page", updated.Notes)

	assert.Equal(t, KindForbidden, KindOf(svc.Delete(task.ID, "student")))
	require.NoError(t, svc.Delete(task.ID, "teacher"))
	_, err = svc.Get(task.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestTaskLists(t *testing.T) {
	s := testStores(t, "teacher", "student")
	svc := NewTaskService(s)

	_, err := svc.Create("teacher", "student", "essay", "", nil)
	require.NoError(t, err)
	_, err = svc.Create("teacher", "", "plan lesson", "", nil)
	require.NoError(t, err)

	owned, err := svc.ListOwned("teacher")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	assigned, err := svc.ListAssigned("student")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "essay", assigned[0].Title)
}
