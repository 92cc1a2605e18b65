package settings

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const DbName = "./f1compare-bot.db"

type TelegramUser struct {
	ID     string
	Name   string
	ChatID string
}

// Manager stores which drivers each chat follows for result notifications.
type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager(dbName string) (*Manager, error) {
	if dbName == "" {
		dbName = DbName
	}
	db, err := sql.Open("sqlite3", dbName)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, err
	}

	_, err = db.Exec(buildCreateFollowsTable())
	if err != nil {
		log.Printf("error init database: %s\n", err)
		return nil, err
	}

	return &Manager{
		db: db,
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// ToggleFollow follows the driver when not yet followed, and unfollows it
// otherwise. Returns whether the driver is followed afterwards.
func (m *Manager) ToggleFollow(userID, name, chatID, driver string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	following, err := m.isFollowing(userID, driver)
	if err != nil {
		return false, err
	}

	if following {
		_, err = m.db.Exec(buildDeleteFollowCommand(), userID, driver)
	} else {
		_, err = m.db.Exec(buildInsertFollowCommand(), userID, name, chatID, driver)
	}
	if err != nil {
		log.Printf("error updating database: %s\n", err)
		return following, err
	}
	return !following, nil
}

func (m *Manager) ListFollowedDrivers(userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stmt, read := buildSelectFollowedDriversCommand()
	rows, err := m.db.Query(stmt, userID)
	if err != nil {
		return nil, err
	}
	return read(rows)
}

// ListFollowers returns the users to notify when a result lands for driver.
func (m *Manager) ListFollowers(driver string) ([]TelegramUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stmt, read := buildSelectFollowersCommand()
	rows, err := m.db.Query(stmt, driver)
	if err != nil {
		return nil, err
	}
	return read(rows)
}

func (m *Manager) isFollowing(userID, driver string) (bool, error) {
	var count int
	err := m.db.QueryRow(buildSelectIsFollowingCommand(), userID, driver).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
