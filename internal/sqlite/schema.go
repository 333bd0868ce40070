package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dialect captures what differs between the SQL engines: driver name, DDL,
// pool settings and how a foreign-key violation is reported.
type dialect struct {
	name         string
	driver       string
	schema       []string
	configure    func(db *sql.DB)
	isForeignKey func(err error) bool
}

// SQLite schema. Deadlines are YYYY-MM-DD text so that deadline <= ?
// compares calendar days.
const (
	sqliteCreateTeams = `CREATE TABLE IF NOT EXISTS teams (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    headquarters TEXT NOT NULL
);`

	sqliteCreateItems = `CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL,
    priority INTEGER,
    owner TEXT NOT NULL,
    deadline TEXT NOT NULL,
    progress TEXT NOT NULL,
    team_id INTEGER REFERENCES teams(id) ON DELETE SET NULL
);`

	sqliteIdxTeamsName        = `CREATE INDEX IF NOT EXISTS idx_teams_name ON teams(name);`
	sqliteIdxItemsDescription = `CREATE INDEX IF NOT EXISTS idx_items_description ON items(description);`
	sqliteIdxItemsPriority    = `CREATE INDEX IF NOT EXISTS idx_items_priority ON items(priority);`
	sqliteIdxItemsDeadline    = `CREATE INDEX IF NOT EXISTS idx_items_deadline ON items(deadline);`
	sqliteIdxItemsTeam        = `CREATE INDEX IF NOT EXISTS idx_items_team ON items(team_id);`
)

// MySQL schema. MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are
// declared inline.
const (
	mysqlCreateTeams = `CREATE TABLE IF NOT EXISTS teams (
    id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    headquarters VARCHAR(255) NOT NULL,
    INDEX idx_teams_name (name)
) ENGINE=InnoDB`

	mysqlCreateItems = `CREATE TABLE IF NOT EXISTS items (
    id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    description VARCHAR(255) NOT NULL,
    priority INT NULL,
    owner VARCHAR(255) NOT NULL,
    deadline DATE NOT NULL,
    progress VARCHAR(255) NOT NULL,
    team_id BIGINT NULL,
    INDEX idx_items_description (description),
    INDEX idx_items_priority (priority),
    INDEX idx_items_deadline (deadline),
    CONSTRAINT fk_items_team FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL
) ENGINE=InnoDB`
)

var sqliteDialect = &dialect{
	name:   "sqlite",
	driver: "sqlite",
	schema: []string{
		sqliteCreateTeams,
		sqliteCreateItems,
		sqliteIdxTeamsName,
		sqliteIdxItemsDescription,
		sqliteIdxItemsPriority,
		sqliteIdxItemsDeadline,
		sqliteIdxItemsTeam,
	},
	// One connection: SQLite admits a single writer.
	configure: func(db *sql.DB) {
		db.SetMaxOpenConns(1)
	},
	isForeignKey: isSQLiteForeignKey,
}

var mysqlDialect = &dialect{
	name:   "mysql",
	driver: "mysql",
	schema: []string{
		mysqlCreateTeams,
		mysqlCreateItems,
	},
	configure:    func(db *sql.DB) {},
	isForeignKey: isMySQLForeignKey,
}

// sqliteDSN enables foreign keys, which SQLite leaves off by default.
func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isSQLiteForeignKey(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(se.Error(), "FOREIGN KEY")
}

// mysqlErrNoReferencedRow is ER_NO_REFERENCED_ROW_2.
const mysqlErrNoReferencedRow = 1452

func isMySQLForeignKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrNoReferencedRow
}
