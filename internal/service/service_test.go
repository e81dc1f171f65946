package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

type services struct {
	users      *UserService
	tasks      *TaskService
	categories *CategoryService
}

func newServices(t *testing.T) services {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return services{
		users:      NewUserService(userRepo, auth.NewPasswordHasher(bcrypt.MinCost)),
		tasks:      NewTaskService(taskRepo, categoryRepo),
		categories: NewCategoryService(categoryRepo),
	}
}

func mustRegister(t *testing.T, svc services, username string) *model.User {
	t.Helper()

	user, err := svc.users.Register(context.Background(), username, "password")
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}
	return user
}

func mustCreateTask(t *testing.T, svc services, userID uint, input TaskInput) *model.Task {
	t.Helper()

	task, err := svc.tasks.Create(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("failed to prepare task: %v", err)
	}
	return task
}

func ptr[T any](v T) *T { return &v }

func TestUserServiceRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := newServices(t)

	cases := []struct {
		name, username, password string
	}{
		{"missing username", "", "password"},
		{"missing password", "alice", ""},
		{"blank username", "   ", "password"},
		{"short username", "a", "password"},
		{"short password", "alice", "12345"},
	}
	for _, tc := range cases {
		_, err := svc.users.Register(context.Background(), tc.username, tc.password)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestUserServiceRegister_SeedsCategoriesAndRejectsDuplicate(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()

	user := mustRegister(t, svc, "  alice ")
	if user.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", user.Username)
	}

	cats, err := svc.categories.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("expected 4 default categories, got %d", len(cats))
	}

	if _, err := svc.users.Register(ctx, "alice", "another-password"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserServiceRegister_ConcurrentSameUsername(t *testing.T) {
	t.Parallel()

	svc := newServices(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.users.Register(context.Background(), "racer", "password")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if winners != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 winner and %d conflicts, got %d and %d", attempts-1, winners, conflicts)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	registered := mustRegister(t, svc, "alice")

	user, err := svc.users.Authenticate(ctx, "alice", "password")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := svc.users.Authenticate(ctx, "alice", "wrong-password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := svc.users.Authenticate(ctx, "nobody", "password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if _, err := svc.users.Authenticate(ctx, "alice", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing password, got %v", err)
	}
}

func TestUserServiceDelete_Cascades(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alice")
	mustCreateTask(t, svc, user.ID, TaskInput{Title: "bye"})

	if err := svc.users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.users.Get(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	tasks, err := svc.tasks.List(ctx, user.ID)
	if err != nil || len(tasks) != 0 {
		t.Fatalf("expected tasks to be removed, got %d (%v)", len(tasks), err)
	}
	if err := svc.users.Delete(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserServiceEnsureUser(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()

	first, created, err := svc.users.EnsureUser(ctx, "admin", "admin123")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got created=%v err=%v", created, err)
	}
	second, created, err := svc.users.EnsureUser(ctx, "admin", "admin123")
	if err != nil || created {
		t.Fatalf("expected existing admin, got created=%v err=%v", created, err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same admin id, got %d and %d", first.ID, second.ID)
	}
}

func TestTaskServiceCreate_Defaults(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	user := mustRegister(t, svc, "alice")

	task := mustCreateTask(t, svc, user.ID, TaskInput{Title: "  Buy milk  "})

	if task.Title != "Buy milk" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Priority != model.PriorityMedium {
		t.Fatalf("expected medium priority, got %q", task.Priority)
	}
	if task.Status != model.StatusPending {
		t.Fatalf("expected pending status, got %q", task.Status)
	}
	if task.Description != "" || task.CategoryID != nil || task.DueDate != nil {
		t.Fatalf("expected empty optional fields, got %+v", task)
	}
}

func TestTaskServiceCreate_Validation(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	user := mustRegister(t, svc, "alice")

	cases := map[string]TaskInput{
		"empty title":  {Title: "   "},
		"bad priority": {Title: "t", Priority: "urgent"},
		"bad status":   {Title: "t", Status: "doing"},
		"bad due date": {Title: "t", DueDate: "14/10/2026"},
	}
	for name, input := range cases {
		if _, err := svc.tasks.Create(context.Background(), user.ID, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestTaskServiceCreate_ForeignCategory(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")

	bobCats, err := svc.categories.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	_, err = svc.tasks.Create(ctx, alice.ID, TaskInput{Title: "t", CategoryID: &bobCats[0].ID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskServiceUpdate_StatusOnly(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alice")
	cats, err := svc.categories.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	task := mustCreateTask(t, svc, user.ID, TaskInput{
		Title:       "report",
		Description: "quarterly",
		CategoryID:  &cats[0].ID,
		Priority:    "high",
		DueDate:     "2026-10-20",
	})

	updated, err := svc.tasks.Update(ctx, user.ID, task.ID, TaskPatch{Status: ptr("done")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Status != model.StatusDone {
		t.Fatalf("expected done, got %q", updated.Status)
	}
	if updated.Title != "report" || updated.Description != "quarterly" || updated.Priority != model.PriorityHigh {
		t.Fatalf("expected other fields unchanged, got %+v", updated)
	}
	if updated.CategoryID == nil || *updated.CategoryID != cats[0].ID {
		t.Fatalf("expected category unchanged, got %v", updated.CategoryID)
	}
	if updated.DueDate == nil || *updated.DueDate != "2026-10-20" {
		t.Fatalf("expected due date unchanged, got %v", updated.DueDate)
	}
}

func TestTaskServiceUpdate_BlankTitleAndClearing(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alice")
	cats, err := svc.categories.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	task := mustCreateTask(t, svc, user.ID, TaskInput{Title: "keep me", CategoryID: &cats[1].ID, DueDate: "2026-01-01"})

	updated, err := svc.tasks.Update(ctx, user.ID, task.ID, TaskPatch{
		Title:       ptr("   "),
		SetCategory: true,
		CategoryID:  nil,
		DueDate:     ptr(""),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "keep me" {
		t.Fatalf("expected title retained, got %q", updated.Title)
	}
	if updated.CategoryID != nil {
		t.Fatalf("expected category cleared, got %v", *updated.CategoryID)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", *updated.DueDate)
	}

	stored, err := svc.tasks.Get(ctx, user.ID, task.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Title != "keep me" || stored.CategoryID != nil || stored.DueDate != nil {
		t.Fatalf("expected persisted changes, got %+v", stored)
	}
}

func TestTaskService_CrossUserNotFound(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")
	task := mustCreateTask(t, svc, alice.ID, TaskInput{Title: "private"})

	if _, err := svc.tasks.Get(ctx, bob.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.tasks.Update(ctx, bob.ID, task.ID, TaskPatch{Status: ptr("done")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := svc.tasks.Delete(ctx, bob.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}

	stored, err := svc.tasks.Get(ctx, alice.ID, task.ID)
	if err != nil || stored.Status != model.StatusPending {
		t.Fatalf("expected alice's task untouched, got %+v (%v)", stored, err)
	}
}

func TestCategoryService_CreateUpdate(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")

	cat, err := svc.categories.Create(ctx, alice.ID, " Errands ", "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if cat.Name != "Errands" || cat.Color != model.DefaultCategoryColor {
		t.Fatalf("unexpected category: %+v", cat)
	}

	if _, err := svc.categories.Create(ctx, alice.ID, "", "#fff"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.categories.Create(ctx, alice.ID, "Work", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.categories.Create(ctx, bob.ID, "Errands", ""); err != nil {
		t.Fatalf("expected per-user uniqueness, got %v", err)
	}

	if _, err := svc.categories.Update(ctx, alice.ID, cat.ID, CategoryPatch{Name: ptr("Work")}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on rename, got %v", err)
	}

	updated, err := svc.categories.Update(ctx, alice.ID, cat.ID, CategoryPatch{Name: ptr("Errands"), Color: ptr("#000000")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Errands" || updated.Color != "#000000" {
		t.Fatalf("unexpected category: %+v", updated)
	}

	if _, err := svc.categories.Update(ctx, bob.ID, cat.ID, CategoryPatch{Color: ptr("#111")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestCategoryServiceDelete_InUse(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	ctx := context.Background()
	user := mustRegister(t, svc, "alice")
	cats, err := svc.categories.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	work := cats[0]
	task := mustCreateTask(t, svc, user.ID, TaskInput{Title: "report", CategoryID: &work.ID})

	if err := svc.categories.Delete(ctx, user.ID, work.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if _, err := svc.tasks.Update(ctx, user.ID, task.ID, TaskPatch{SetCategory: true, CategoryID: &cats[1].ID}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := svc.categories.Delete(ctx, user.ID, work.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.categories.Delete(ctx, user.ID, work.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	err := notFound("task not found")
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		t.Fatalf("unexpected kind for %v", err)
	}
	if err.Error() != "task not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
