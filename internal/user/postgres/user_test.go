package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/helpdesk/internal/authz"
	"github.com/frahmantamala/helpdesk/internal/user"
	userPostgres "github.com/frahmantamala/helpdesk/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

// SQLiteUser is a SQLite-compatible model for testing
type SQLiteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;default:employee"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	newUser := func(username, email string, role authz.Role) *user.User {
		return user.NewUser(username, email, "hashed-password", role)
	}

	Describe("Create", func() {
		It("should create a user and assign an id", func() {
			u := newUser("erika", "erika@helpdesk.local", authz.RoleEmployee)
			Expect(repo.Create(u)).To(Succeed())
			Expect(u.ID).To(BeNumerically(">", 0))
		})

		It("should enforce unique usernames", func() {
			Expect(repo.Create(newUser("erika", "erika@helpdesk.local", authz.RoleEmployee))).To(Succeed())
			err := repo.Create(newUser("erika", "other@helpdesk.local", authz.RoleEmployee))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID and GetByUsername", func() {
		var created *user.User

		BeforeEach(func() {
			created = newUser("agus", "agus@helpdesk.local", authz.RoleAgent)
			Expect(repo.Create(created)).To(Succeed())
		})

		It("should retrieve by id", func() {
			u, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("agus"))
			Expect(u.Role).To(Equal(authz.RoleAgent))
		})

		It("should retrieve by username", func() {
			u, err := repo.GetByUsername("agus")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(created.ID))
		})

		It("should return the domain not-found error", func() {
			_, err := repo.GetByID(9999)
			Expect(err).To(MatchError(user.ErrNotFound))

			_, err = repo.GetByUsername("ghost")
			Expect(err).To(MatchError(user.ErrNotFound))
		})
	})

	Describe("ExistsByUsernameOrEmail", func() {
		BeforeEach(func() {
			Expect(repo.Create(newUser("erika", "erika@helpdesk.local", authz.RoleEmployee))).To(Succeed())
		})

		It("should detect a taken username", func() {
			taken, err := repo.ExistsByUsernameOrEmail("erika", "new@helpdesk.local")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())
		})

		It("should detect a taken email", func() {
			taken, err := repo.ExistsByUsernameOrEmail("newuser", "erika@helpdesk.local")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())
		})

		It("should report free combinations as available", func() {
			taken, err := repo.ExistsByUsernameOrEmail("newuser", "new@helpdesk.local")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})
	})
})
