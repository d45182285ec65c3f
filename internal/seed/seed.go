package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with test users, a follow mesh between them,
// and a spread of posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	edges, err := createFollowMesh(f, users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("%d follow edges created", edges)

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", posts)

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE follows, posts, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, model := range []interface{}{&models.Follow{}, &models.Post{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowMesh wires each user to a handful of others so feeds are
// populated. Density scales with the user count but stays well below a
// full mesh.
func createFollowMesh(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	perUser := 5
	if perUser > len(users)-1 {
		perUser = len(users) - 1
	}

	edges := 0
	for _, author := range users {
		for i := 0; i < perUser; i++ {
			target := users[f.rnd.Intn(len(users))]
			if err := f.CreateFollow(author, target); err != nil {
				return edges, err
			}
			edges++
		}
	}
	return edges, nil
}

func createPosts(f *Factory, users []*models.User, n int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	const batchSize = 100
	created := 0
	for created < n {
		size := batchSize
		if n-created < size {
			size = n - created
		}
		batch := make([]*models.Post, 0, size)
		for i := 0; i < size; i++ {
			author := users[f.rnd.Intn(len(users))]
			batch = append(batch, f.BuildPost(author))
		}
		if err := f.CreatePostsBatch(batch); err != nil {
			return created, err
		}
		created += size
	}
	return created, nil
}
