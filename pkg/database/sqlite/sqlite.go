package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ConnectDB открывает файловую БД SQLite. Родительский каталог создаётся при необходимости.
// Пул ограничен одним соединением: SQLite допускает только одного писателя.
func ConnectDB(path string, busyTimeoutMS int) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: пустой путь к файлу БД")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: не удалось создать каталог %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path, busyTimeoutMS))
	if err != nil {
		return nil, fmt.Errorf("sqlite: открытие %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

func dsn(path string, busyTimeoutMS int) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}
