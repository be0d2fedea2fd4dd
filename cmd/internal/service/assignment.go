package service

import (
	"context"
	"fmt"

	"instime/cmd/internal/domain/entity"
)

type IssueReason string

const (
	IssueNotFound IssueReason = "not_found"
	IssueNotOwned IssueReason = "not_owned"
)

// AssignmentIssue explains why one freetime id was left out of a task.
type AssignmentIssue struct {
	FreetimeID int         `json:"freetime_id"`
	Reason     IssueReason `json:"reason"`
	Message    string      `json:"message"`
}

// Assign makes the freetimes named by ids that exist and share the task's
// owner the task's complete link set. Previous links not in ids are
// dropped, an empty ids detaches everything, and repeating a call with the
// same ids changes nothing. The lookup and the replace must share the
// caller's transaction so a freetime cannot vanish between them.
func Assign(ctx context.Context, tasks TaskRepository, freetimes FreetimeRepository, task *entity.Task, ids []int) ([]*AssignmentIssue, error) {
	unique := uniqueIDs(ids)

	found, err := freetimes.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("find freetimes: %w", err)
	}

	valid, issues := ResolveFreetimes(task.UserID, unique, found)
	if err := tasks.ReplaceFreetimes(ctx, task, valid); err != nil {
		return nil, fmt.Errorf("replace freetimes: %w", err)
	}
	return issues, nil
}

// ResolveFreetimes walks ids in order and keeps the freetimes that were
// found and belong to ownerID. Every other id yields one issue.
func ResolveFreetimes(ownerID int, ids []int, found []*entity.Freetime) ([]*entity.Freetime, []*AssignmentIssue) {
	byID := make(map[int]*entity.Freetime, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}

	valid := make([]*entity.Freetime, 0, len(ids))
	issues := []*AssignmentIssue{}
	for _, id := range uniqueIDs(ids) {
		f, ok := byID[id]
		switch {
		case !ok:
			issues = append(issues, &AssignmentIssue{
				FreetimeID: id,
				Reason:     IssueNotFound,
				Message:    fmt.Sprintf("freetime %d does not exist", id),
			})
		case f.UserID != ownerID:
			issues = append(issues, &AssignmentIssue{
				FreetimeID: id,
				Reason:     IssueNotOwned,
				Message:    fmt.Sprintf("freetime %d belongs to another user", id),
			})
		default:
			valid = append(valid, f)
		}
	}
	return valid, issues
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
