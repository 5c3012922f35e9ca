package util

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bistdesk/internal/db"

	"github.com/shopspring/decimal"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TimePointer(t time.Time) *time.Time {
	return &t
}

func StringPointer(s string) *string {
	return &s
}

func Int64Pointer(i int64) *int64 {
	return &i
}

func Float64Pointer(f float64) *float64 {
	return &f
}

// NewTestDb gives each test its own migrated in-memory SQLite handle.
func NewTestDb() (*sql.DB, error) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	// every new connection to :memory: is a fresh database
	dbConn.SetMaxOpenConns(1)
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	return dbConn, nil
}

// Settings is the on-disk config, overridable per field via env.
type Settings struct {
	Port           int    `json:"port"`
	DbPath         string `json:"dbPath"`
	ChatGPTApiKey  string `json:"gpt"`
	SymbolListURL  string `json:"symbolListUrl"`
	ExchangeSuffix string `json:"exchangeSuffix"`
}

func defaultSettings() Settings {
	return Settings{
		Port:           3009,
		DbPath:         "bistdesk.db",
		SymbolListURL:  "https://api.asenax.com/bist/list/",
		ExchangeSuffix: ".IS",
	}
}

func LoadSettings() (*Settings, error) {
	settings := defaultSettings()

	settingsFile := "settings.json"
	if f := os.Getenv("BISTDESK_SETTINGS"); f != "" {
		settingsFile = f
	}
	if contents, err := os.ReadFile(settingsFile); err == nil {
		if err := json.Unmarshal(contents, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", settingsFile, err)
		}
	}

	if v := os.Getenv("BISTDESK_DB_PATH"); v != "" {
		settings.DbPath = v
	}
	if v := os.Getenv("BISTDESK_GPT_KEY"); v != "" {
		settings.ChatGPTApiKey = v
	}

	return &settings, nil
}
