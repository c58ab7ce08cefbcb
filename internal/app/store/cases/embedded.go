package casestore

import (
	"context"
	"time"

	"github.com/advocateworks/lexhub/internal/app/system/htmlsanitize"
	"github.com/advocateworks/lexhub/internal/app/system/normalize"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents, notes, and tasks live embedded in the case document. Each
// append is a single $push, so concurrent appends to the same case
// interleave without loss. Embedded items have no ids of their own;
// documents are addressed by name.

// AddDocument appends a document record to the case.
func (s *Store) AddDocument(ctx context.Context, caseID, advocateID primitive.ObjectID, doc models.CaseDocument) (models.CaseDocument, error) {
	doc.Name = normalize.Name(doc.Name)
	if doc.Name == "" {
		return models.CaseDocument{}, errs.Validation("document name is required")
	}
	if doc.URL == "" {
		return models.CaseDocument{}, errs.Validation("document url is required")
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": caseID, "advocateId": advocateID},
		bson.M{
			"$push": bson.M{"documents": doc},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return models.CaseDocument{}, err
	}
	if res.MatchedCount == 0 {
		return models.CaseDocument{}, errs.NotFound("case not found")
	}
	return doc, nil
}

// RemoveDocument deletes every embedded document with the given name.
// Names are not unique within a case, so duplicates all go at once.
func (s *Store) RemoveDocument(ctx context.Context, caseID, advocateID primitive.ObjectID, name string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": caseID, "advocateId": advocateID},
		bson.M{
			"$pull": bson.M{"documents": bson.M{"name": name}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("case not found")
	}
	if res.ModifiedCount == 0 {
		return errs.NotFound("document not found")
	}
	return nil
}

// AddNote appends a note. Content passes through the UGC sanitizer; the
// isPrivate flag is stored as-is and interpreted at read time.
func (s *Store) AddNote(ctx context.Context, caseID, advocateID primitive.ObjectID, note models.CaseNote) (models.CaseNote, error) {
	note.Content = htmlsanitize.Sanitize(note.Content)
	if note.Content == "" {
		return models.CaseNote{}, errs.Validation("note content is required")
	}
	if note.Author.IsZero() {
		return models.CaseNote{}, errs.Validation("note author is required")
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": caseID, "advocateId": advocateID},
		bson.M{
			"$push": bson.M{"notes": note},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return models.CaseNote{}, err
	}
	if res.MatchedCount == 0 {
		return models.CaseNote{}, errs.NotFound("case not found")
	}
	return note, nil
}

// AddTask appends a task with defaulted status and priority.
func (s *Store) AddTask(ctx context.Context, caseID, advocateID primitive.ObjectID, task models.CaseTask) (models.CaseTask, error) {
	task.Title = normalize.Name(task.Title)
	if task.Title == "" {
		return models.CaseTask{}, errs.Validation("task title is required")
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskStatus(task.Status) {
		return models.CaseTask{}, errs.Validation("unknown task status %q", task.Status)
	}
	if !models.ValidTaskPriority(task.Priority) {
		return models.CaseTask{}, errs.Validation("unknown task priority %q", task.Priority)
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": caseID, "advocateId": advocateID},
		bson.M{
			"$push": bson.M{"tasks": task},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return models.CaseTask{}, err
	}
	if res.MatchedCount == 0 {
		return models.CaseTask{}, errs.NotFound("case not found")
	}
	return task, nil
}
