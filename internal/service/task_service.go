package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	dom "github.com/OUCHAALI/task-manager-app/internal/domain"
	"github.com/OUCHAALI/task-manager-app/internal/repo"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title must not be empty")
)

// UpdateParams carries the fields of a merge-patch update. A nil pointer
// means the field was not supplied. Description needs the extra flag so an
// explicit null can clear it while an absent key leaves it untouched.
type UpdateParams struct {
	Title          *string
	Description    *string
	HasDescription bool
	Completed      *bool
}

type TaskService struct {
	repo repo.TaskRepo
}

func NewTaskService(r repo.TaskRepo) *TaskService {
	return &TaskService{repo: r}
}

func (s *TaskService) Create(ctx context.Context, title string, desc *string, completed bool) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}

	return s.repo.Create(ctx, dom.Task{
		Title:       title,
		Description: desc,
		Completed:   completed,
	})
}

func (s *TaskService) List(ctx context.Context) ([]dom.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Update applies a merge-patch: only supplied fields change. The row is
// fetched first so a missing id is reported before any mutation is attempted.
func (s *TaskService) Update(ctx context.Context, id int64, p UpdateParams) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	patch := existing
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return dom.Task{}, ErrEmptyTitle
		}
		patch.Title = title
	}
	if p.HasDescription {
		patch.Description = p.Description
	}
	if p.Completed != nil {
		patch.Completed = *p.Completed
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
