package model

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID                  int64     `json:"id"`
	Email               string    `json:"email"`
	Password            string    `json:"-"`
	DisplayName         string    `json:"display_name,omitempty"`
	Currency            string    `json:"currency"`
	GoalMonthlyDividend int64     `json:"goal_monthly_dividend"`
	MonthlyInvestPlan   int64     `json:"monthly_invest_plan"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserSettings is the editable slice of a user's profile, consumed by the
// report and KPI computations.
type UserSettings struct {
	GoalMonthlyDividend int64 `json:"goal_monthly_dividend"`
	MonthlyInvestPlan   int64 `json:"monthly_invest_plan"`
}

func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) CreateUser(db *sql.DB) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Currency == "" {
		u.Currency = "KRW"
	}

	query := `
	INSERT INTO users (email, password, display_name, currency, goal_monthly_dividend, monthly_invest_plan, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(
		u.Email,
		u.Password,
		u.DisplayName,
		u.Currency,
		u.GoalMonthlyDividend,
		u.MonthlyInvestPlan,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var displayName sql.NullString
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &displayName, &user.Currency,
		&user.GoalMonthlyDividend, &user.MonthlyInvestPlan,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.DisplayName = displayName.String
	return &user, nil
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	query := `
	SELECT id, email, password, display_name, currency, goal_monthly_dividend, monthly_invest_plan, created_at, updated_at
	FROM users
	WHERE id = ?`
	return scanUser(db.QueryRow(query, id))
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	query := `
	SELECT id, email, password, display_name, currency, goal_monthly_dividend, monthly_invest_plan, created_at, updated_at
	FROM users
	WHERE email = ?`
	return scanUser(db.QueryRow(query, email))
}

// UpdateUserSettings persists the goal and plan settings for a user.
func UpdateUserSettings(db *sql.DB, userID int64, settings UserSettings) error {
	_, err := db.Exec(`
		UPDATE users
		SET goal_monthly_dividend = ?, monthly_invest_plan = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		settings.GoalMonthlyDividend, settings.MonthlyInvestPlan, userID,
	)
	return err
}
