// Seed populates the JSON stores with a demo user and a spread of tasks so
// the API can be explored without registering first.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskpad/internal/config"
	"taskpad/internal/model"
	"taskpad/internal/repository"
	"taskpad/internal/storage"
)

const (
	demoEmail    = "demo@taskpad.local"
	demoPassword = "demo1234"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	policy, err := storage.ParseCorruptPolicy(cfg.OnCorrupt)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	userRepo := repository.NewUserRepository(storage.NewDocument(cfg.UsersFile(), policy))
	taskRepo := repository.NewTaskRepository(storage.NewDocument(cfg.TasksFile(), policy))

	ctx := context.Background()

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	switch {
	case err == nil:
		log.Printf("Demo user already present: %s", user.ID)
	case err == repository.ErrNotFound:
		hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("hash demo password: %v", err)
		}
		user = &model.User{
			ID:           uuid.NewString(),
			Username:     "demo",
			Email:        demoEmail,
			PasswordHash: string(hashed),
			CreatedAt:    time.Now().UTC(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	default:
		log.Fatalf("read user store: %v", err)
	}

	existing, err := taskRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Fatalf("read task store: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d tasks, nothing to do", len(existing))
		return
	}

	seeded := 0
	for _, task := range demoTasks(user.ID) {
		if err := taskRepo.Create(ctx, &task); err != nil {
			log.Fatalf("create task %q: %v", task.Title, err)
		}
		seeded++
	}
	log.Printf("Seed completed: %d tasks created", seeded)
}

func demoTasks(userID string) []model.Task {
	now := time.Now().UTC()
	today := model.NewDateTime(now.Truncate(24 * time.Hour))
	tomorrow := model.NewDateTime(today.Time.Add(24 * time.Hour))
	nextWeek := model.NewDateTime(today.Time.Add(7 * 24 * time.Hour))
	reminder := model.NewDateTime(now.Add(2 * time.Hour))

	mk := func(title, description string, status model.Status, due, rem *model.DateTime) model.Task {
		return model.Task{
			ID:          uuid.NewString(),
			UserID:      userID,
			Title:       title,
			Description: description,
			Status:      status,
			DueDate:     due,
			Reminder:    rem,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []model.Task{
		mk("Buy groceries", "Milk, bread, coffee", model.StatusNew, &today, &reminder),
		mk("Prepare weekly report", "Numbers for the Monday sync", model.StatusInProgress, &tomorrow, nil),
		mk("Renew gym membership", "", model.StatusNew, &nextWeek, nil),
		mk("Backup laptop", "External drive is in the drawer", model.StatusDone, nil, nil),
		mk("Plan weekend trip", "Check train schedule", model.StatusNew, nil, nil),
	}
}
