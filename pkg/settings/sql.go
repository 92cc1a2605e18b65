package settings

import "database/sql"

func buildCreateFollowsTable() string {
	return `CREATE TABLE IF NOT EXISTS follows (
		userid TEXT NOT NULL,
		name TEXT NOT NULL,
		chatid TEXT NOT NULL,
		driver TEXT NOT NULL,
		PRIMARY KEY (userid, driver));`
}

func buildSelectFollowedDriversCommand() (string, func(*sql.Rows) ([]string, error)) {
	return `SELECT driver FROM follows WHERE userid = ? ORDER BY driver`, processSelectFollowedDriversRows
}

func processSelectFollowedDriversRows(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	drivers := make([]string, 0)
	for rows.Next() {
		var driver string
		if err := rows.Scan(&driver); err != nil {
			return drivers, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

func buildSelectFollowersCommand() (string, func(*sql.Rows) ([]TelegramUser, error)) {
	return `SELECT userid, name, chatid FROM follows WHERE driver = ?`, processSelectFollowersRows
}

func processSelectFollowersRows(rows *sql.Rows) ([]TelegramUser, error) {
	defer rows.Close()

	users := make([]TelegramUser, 0)
	for rows.Next() {
		var id string
		var name string
		var chatid string
		if err := rows.Scan(&id, &name, &chatid); err != nil {
			return users, err
		}
		users = append(users, TelegramUser{
			ID:     id,
			Name:   name,
			ChatID: chatid,
		})
	}
	return users, rows.Err()
}

func buildInsertFollowCommand() string {
	return `INSERT OR REPLACE INTO follows (userid, name, chatid, driver) VALUES (?, ?, ?, ?)`
}

func buildDeleteFollowCommand() string {
	return `DELETE FROM follows WHERE userid = ? AND driver = ?`
}

func buildSelectIsFollowingCommand() string {
	return `SELECT COUNT(1) FROM follows WHERE userid = ? AND driver = ?`
}
